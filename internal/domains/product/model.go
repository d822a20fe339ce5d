package product

import (
	"time"

	"github.com/shopspring/decimal"

	"inventory-backend/internal/shared/pagination"
)

type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`

	// Categories and CategoryIDs are derived from the association table,
	// ordered by category name, index aligned.
	Categories  []string `json:"categories"`
	CategoryIDs []int64  `json:"category_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter selects a page of products. CategoryIDs match with OR semantics:
// a product qualifies when it belongs to any of them.
type Filter struct {
	Search      string
	CategoryIDs []int64
	Page        int
	Limit       int

	// AfterID restricts the match to ids above it. Export walks with it
	// instead of Page so rows written or removed meanwhile shift nothing.
	AfterID int64
}

type ListResult struct {
	Products   []Product             `json:"products"`
	Pagination pagination.Pagination `json:"pagination"`
}

// LowStockThreshold is the quantity below which a product counts as low stock.
const LowStockThreshold = 10

type Stats struct {
	TotalProducts int64           `json:"total_products"`
	TotalQuantity int64           `json:"total_quantity"`
	AvgQuantity   decimal.Decimal `json:"avg_quantity"`
	MinQuantity   int64           `json:"min_quantity"`
	MaxQuantity   int64           `json:"max_quantity"`
	LowStockCount int64           `json:"low_stock_count"`
}

// BulkDeleteItem is the outcome for one requested id.
type BulkDeleteItem struct {
	ID      int64  `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BulkDeleteResult struct {
	DeletedCount   int              `json:"deletedCount"`
	TotalRequested int              `json:"totalRequested"`
	Results        []BulkDeleteItem `json:"results"`
}
