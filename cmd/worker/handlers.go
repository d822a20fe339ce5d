package main

import (
	"github.com/hibiken/asynq"

	categoryJob "inventory-backend/internal/domains/category/job"
	productJob "inventory-backend/internal/domains/product/job"
	"inventory-backend/internal/shared"
	"inventory-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	lowStockReport    *productJob.LowStockReportHandler
	refreshCategories *categoryJob.RefreshCacheHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		lowStockReport:    productJob.NewLowStockReportHandler(c.ProductService),
		refreshCategories: categoryJob.NewRefreshCacheHandler(c.CategoryService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeLowStockReport, h.lowStockReport.ProcessTask)
	mux.HandleFunc(shared.TypeRefreshCategories, h.refreshCategories.ProcessTask)
}
