package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"inventory-backend/internal/config"
	"inventory-backend/internal/shared"
	"inventory-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.WorkerConfig
}

func NewScheduler(redisOpt asynq.RedisConnOpt, cfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.WarnLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		cfg:       cfg,
	}
}

// RegisterJobs adds every periodic task. It fails on an invalid cron spec.
func (s *Scheduler) RegisterJobs() error {
	if err := s.registerLowStockReportJob(); err != nil {
		return err
	}
	return s.registerRefreshCategoriesJob()
}

// ================================================
// JOB 1: Low stock report
// ================================================
func (s *Scheduler) registerLowStockReportJob() error {
	payload, err := json.Marshal(shared.LowStockReportPayload{Limit: s.cfg.LowStockListLimit})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeLowStockReport, payload)

	_, err = s.scheduler.Register(
		s.cfg.LowStockCron,
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register LowStockReport job", err)
		return fmt.Errorf("register %s: %w", shared.TypeLowStockReport, err)
	}

	logger.Info("Registered LowStockReport", map[string]interface{}{
		"cron": s.cfg.LowStockCron,
	})
	return nil
}

// ================================================
// JOB 2: Refresh category cache
// ================================================
func (s *Scheduler) registerRefreshCategoriesJob() error {
	task := asynq.NewTask(shared.TypeRefreshCategories, nil)

	_, err := s.scheduler.Register(
		s.cfg.CacheWarmCron,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(30*time.Second),
		// A refresh still queued when the next one fires is redundant.
		asynq.Unique(time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register RefreshCategories job", err)
		return fmt.Errorf("register %s: %w", shared.TypeRefreshCategories, err)
	}

	logger.Info("Registered RefreshCategories", map[string]interface{}{
		"cron": s.cfg.CacheWarmCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
