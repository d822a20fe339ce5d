package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"inventory-backend/internal/domains/product"
	"inventory-backend/internal/shared"
	"inventory-backend/pkg/logger"
)

// LowStockReportHandler logs inventory totals and the scarcest products.
type LowStockReportHandler struct {
	service product.Service
}

func NewLowStockReportHandler(service product.Service) *LowStockReportHandler {
	return &LowStockReportHandler{service: service}
}

// ProcessTask runs on the scheduler's cron. Store errors are returned so
// asynq retries the task; a malformed payload is not retried.
func (h *LowStockReportHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.LowStockReportPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Error("LowStockReport: invalid payload", err)
			return fmt.Errorf("unmarshal LowStockReport payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	stats, err := h.service.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("low stock report: %w", err)
	}

	fields := map[string]interface{}{
		"total_products":  stats.TotalProducts,
		"total_quantity":  stats.TotalQuantity,
		"avg_quantity":    stats.AvgQuantity.String(),
		"low_stock_count": stats.LowStockCount,
	}

	if stats.LowStockCount == 0 {
		logger.Info("LowStockReport: no products below threshold", fields)
		return nil
	}

	products, err := h.service.LowStock(ctx, payload.Limit)
	if err != nil {
		return fmt.Errorf("low stock report: %w", err)
	}

	items := make([]string, 0, len(products))
	for _, p := range products {
		items = append(items, fmt.Sprintf("#%d %s (%d)", p.ID, p.Name, p.Quantity))
	}
	fields["products"] = items

	logger.Warn("LowStockReport: products below threshold", fields)
	return nil
}
