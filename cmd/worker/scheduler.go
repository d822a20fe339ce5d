package main

import (
	"fmt"

	"github.com/hibiken/asynq"

	"inventory-backend/internal/config"
	"inventory-backend/internal/infrastructure/queue"
	"inventory-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler with logging on shutdown
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(redisOpt asynq.RedisConnOpt, cfg config.WorkerConfig) (*asynqScheduler, error) {
	scheduler := queue.NewScheduler(redisOpt, cfg)

	if err := scheduler.RegisterJobs(); err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	go func() {
		logger.Info("[Scheduler] Starting...", nil)
		if err := scheduler.Start(); err != nil {
			logger.Error("[Scheduler] Failed", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}, nil
}

func (s *asynqScheduler) Shutdown() {
	logger.Info("[Scheduler] Shutting down...", nil)
	s.Scheduler.Shutdown()
	logger.Info("[Scheduler] Stopped", nil)
}
