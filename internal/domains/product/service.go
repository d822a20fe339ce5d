package product

import (
	"context"
	"io"

	"inventory-backend/internal/shared"
)

type Service interface {
	List(ctx context.Context, q ListQuery) (*ListResult, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, req ProductRequest) (*Product, error)
	Update(ctx context.Context, id int64, req ProductRequest) (*Product, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, req BulkDeleteRequest) (*BulkDeleteResult, error)
	Search(ctx context.Context, term string, limit int) ([]shared.NameMatch, error)
	GetStats(ctx context.Context) (*Stats, error)
	LowStock(ctx context.Context, limit int) ([]Product, error)

	// Export writes every product matching q as an xlsx workbook to w.
	Export(ctx context.Context, q ListQuery, w io.Writer) error
}
