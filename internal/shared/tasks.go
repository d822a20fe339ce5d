package shared

// Background task types handled by cmd/worker.
const (
	TypeLowStockReport    = "product:low_stock_report"
	TypeRefreshCategories = "category:refresh_cache"
)

// Queue names and their weights in the worker.
const (
	QueueDefault     = "default"
	QueueMaintenance = "maintenance"
)

// LowStockReportPayload bounds how many low stock products a report lists.
type LowStockReportPayload struct {
	Limit int `json:"limit"`
}
