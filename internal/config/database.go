package config

import (
	"fmt"
	"strconv"
	"time"

	"inventory-backend/internal/infrastructure/database"
)

// strictEnv parses env values and keeps the first parse failure.
type strictEnv struct {
	err error
}

func (e *strictEnv) integer(key, defaultValue string) int {
	n, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return n
}

func (e *strictEnv) duration(key, defaultValue string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return d
}

// LoadDatabaseConfig reads the pool settings from the environment.
// Unlike Load it fails on malformed values instead of falling back to defaults.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	env := &strictEnv{}

	cfg := &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              env.integer("DB_PORT", "5432"),
		Username:          getEnv("DB_USER", "postgres"),
		Password:          getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "product_inventory"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(env.integer("DB_MAX_CONNECTIONS", "10")),
		MinConns:          int32(env.integer("DB_MIN_CONNECTIONS", "1")),
		MaxConnLifetime:   env.duration("DB_MAX_CONN_LIFETIME", "5m"),
		MaxConnIdleTime:   env.duration("DB_MAX_CONN_IDLE_TIME", "1m"),
		HealthCheckPeriod: env.duration("DB_HEALTH_CHECK_PERIOD", "1m"),
		MaxRetries:        env.integer("DB_MAX_RETRIES", "5"),
		RetryDelay:        env.duration("DB_RETRY_DELAY", "1s"),
		ConnectTimeout:    env.duration("DB_CONNECT_TIMEOUT", "10s"),
		AutoMigrate:       getEnvBool("DB_AUTO_MIGRATE", true),
	}
	if env.err != nil {
		return nil, env.err
	}

	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)", cfg.MinConns, cfg.MaxConns)
	}
	return cfg, nil
}
