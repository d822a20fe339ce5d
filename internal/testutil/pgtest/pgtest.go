// Package pgtest runs an embedded PostgreSQL server for repository tests.
package pgtest

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-backend/internal/infrastructure/database"
)

const (
	user     = "inventory"
	password = "inventory"
	dbName   = "inventory_test"
)

// Server is a running embedded PostgreSQL with the schema applied.
type Server struct {
	Pool *pgxpool.Pool

	pg         *embeddedpostgres.EmbeddedPostgres
	runtimeDir string
}

// Start boots a server on port. Each test package must use its own port
// because packages run in parallel.
func Start(port uint32) (*Server, error) {
	runtimeDir, err := os.MkdirTemp("", "inventory-pgtest-*")
	if err != nil {
		return nil, fmt.Errorf("pgtest: runtime dir: %w", err)
	}

	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Username(user).
		Password(password).
		Database(dbName).
		Port(port).
		RuntimePath(runtimeDir).
		StartTimeout(60 * time.Second))

	if err := pg.Start(); err != nil {
		_ = os.RemoveAll(runtimeDir)
		return nil, fmt.Errorf("pgtest: start: %w", err)
	}

	s := &Server{pg: pg, runtimeDir: runtimeDir}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dsn := fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable", user, password, port, dbName)
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.Stop()
		return nil, fmt.Errorf("pgtest: connect: %w", err)
	}
	s.Pool = pool

	if err := database.Migrate(ctx, pool); err != nil {
		s.Stop()
		return nil, err
	}

	return s, nil
}

// Stop closes the pool and shuts the server down.
func (s *Server) Stop() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	_ = s.pg.Stop()
	_ = os.RemoveAll(s.runtimeDir)
}

// Reset empties every table and restarts the id sequences.
func (s *Server) Reset(t testing.TB) {
	t.Helper()

	const query = `TRUNCATE product_categories, products, categories RESTART IDENTITY CASCADE`
	if _, err := s.Pool.Exec(context.Background(), query); err != nil {
		t.Fatalf("pgtest: reset: %v", err)
	}
}

// Main is used from TestMain. It starts the server unless -short is set and
// stores it in *srv; when the server cannot start, *srv stays nil and the
// tests that need it skip.
func Main(m *testing.M, port uint32, srv **Server) int {
	flag.Parse()
	if testing.Short() {
		return m.Run()
	}

	s, err := Start(port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgtest: embedded postgres unavailable, skipping integration tests: %v\n", err)
		return m.Run()
	}
	defer s.Stop()

	*srv = s
	return m.Run()
}

// Require skips t when no server is running, otherwise resets it.
func Require(t *testing.T, srv *Server) *Server {
	t.Helper()

	if srv == nil {
		t.Skip("embedded postgres not running")
	}
	srv.Reset(t)
	return srv
}
