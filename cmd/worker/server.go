package main

import (
	"context"

	"github.com/hibiken/asynq"

	"inventory-backend/internal/config"
	"inventory-backend/internal/shared"
	"inventory-backend/pkg/logger"
)

// asynqServer wraps asynq.Server with logging on shutdown
type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(redisOpt asynq.RedisConnOpt, cfg config.WorkerConfig, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				shared.QueueDefault:     6,
				shared.QueueMaintenance: 2,
			},
			Concurrency: cfg.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.ErrorWithFields("[Asynq] Task failed", err, map[string]interface{}{
					"type": task.Type(),
				})
			}),
		},
	)

	go func() {
		logger.Info("[Worker] Starting...", map[string]interface{}{
			"concurrency": cfg.Concurrency,
		})
		if err := srv.Run(mux); err != nil {
			logger.Error("[Worker] Failed", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to asynq's ShutdownTimeout.
func (s *asynqServer) Shutdown() {
	logger.Info("[Worker] Shutting down...", nil)
	s.Server.Shutdown()
	logger.Info("[Worker] Stopped", nil)
}
