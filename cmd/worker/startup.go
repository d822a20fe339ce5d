package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inventory-backend/pkg/container"
	"inventory-backend/pkg/logger"
)

// checker is satisfied by the database and Redis clients.
type checker interface {
	HealthCheck(ctx context.Context) error
}

type healthServer struct {
	srv *http.Server
}

// newHealthRouter serves /health (every dependency pinged) and /ready.
func newHealthRouter(checks map[string]checker) *gin.Engine {
	router := gin.New()

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		services := gin.H{}
		for name, chk := range checks {
			if err := chk.HealthCheck(ctx); err != nil {
				services[name] = fmt.Sprintf("error: %v", err)
				status = http.StatusServiceUnavailable
				continue
			}
			services[name] = "ok"
		}

		state := "UP"
		if status != http.StatusOK {
			state = "DOWN"
		}
		c.JSON(status, gin.H{"status": state, "service": "inventory-worker", "services": services})
	})

	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	return router
}

func startHealthServer(c *container.Container, port string) *healthServer {
	srv := &http.Server{
		Addr: ":" + port,
		Handler: newHealthRouter(map[string]checker{
			"database": c.DB,
			"redis":    c.Redis,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("[Health] Starting health check server", map[string]interface{}{
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("[Health] Failed to start", err)
		}
	}()

	return &healthServer{srv: srv}
}

func (h *healthServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.srv.Shutdown(ctx); err != nil {
		logger.Error("[Health] Forced shutdown", err)
	}
}
