package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"inventory-backend/internal/domains/category"
	"inventory-backend/pkg/logger"
)

// RefreshCacheHandler reloads the cached category list so reads never
// wait on a cold cache.
type RefreshCacheHandler struct {
	service category.Service
}

func NewRefreshCacheHandler(service category.Service) *RefreshCacheHandler {
	return &RefreshCacheHandler{service: service}
}

func (h *RefreshCacheHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	if err := h.service.RefreshCache(ctx); err != nil {
		logger.Error("RefreshCategoryCache: failed", err)
		return fmt.Errorf("refresh category cache: %w", err)
	}

	logger.Debug("RefreshCategoryCache: done")
	return nil
}
