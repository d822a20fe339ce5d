package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"inventory-backend/pkg/container"
	"inventory-backend/pkg/logger"
)

func main() {
	envFileErr := godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	if envFileErr != nil {
		logger.Info("No .env file found, using system environment variables", nil)
	}

	if err := run(); err != nil {
		logger.Error("[Worker] Stopped with error", err)
		os.Exit(1)
	}
}

func run() error {
	startCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	c, err := container.NewContainer(startCtx)
	cancel()
	if err != nil {
		return err
	}
	defer c.Cleanup()

	// asynq keeps its queues in Redis; the worker cannot degrade to no-op.
	if c.Redis == nil {
		return errors.New("worker requires Redis (REDIS_ENABLED=true and reachable)")
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}

	handlers := initializeHandlers(c)
	srv := setupAsynqServer(redisOpt, c.Config.Worker, handlers)

	scheduler, err := setupScheduler(redisOpt, c.Config.Worker)
	if err != nil {
		srv.Shutdown()
		return err
	}

	health := startHealthServer(c, c.Config.Worker.HealthPort)

	waitForShutdown(srv, scheduler, health)
	return nil
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler, health *healthServer) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("[Shutdown] Gracefully stopping...", nil)
	health.Shutdown()
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("[Shutdown] Stopped", nil)
}
