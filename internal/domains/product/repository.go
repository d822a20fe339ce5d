package product

import (
	"context"

	"inventory-backend/internal/shared"
)

// Repository is the product data access contract.
type Repository interface {
	// List returns one page of distinct products matching f, ordered by id,
	// together with the total number of matching products.
	List(ctx context.Context, f Filter) (*ListResult, error)

	GetByID(ctx context.Context, id int64) (*Product, error)

	// Create inserts p and one association per category id in a single
	// transaction and returns the stored product.
	Create(ctx context.Context, p *Product, categoryIDs []int64) (*Product, error)

	// Update replaces the scalar fields and the whole association set in a
	// single transaction. Returns ErrProductNotFound when no row has the id.
	Update(ctx context.Context, id int64, p *Product, categoryIDs []int64) (*Product, error)

	// Delete removes the product; its associations cascade.
	Delete(ctx context.Context, id int64) (removed bool, err error)

	// DeleteMany removes every existing product in ids and returns the ids
	// that were removed.
	DeleteMany(ctx context.Context, ids []int64) ([]int64, error)

	NameExists(ctx context.Context, name string, excludeID *int64) (bool, error)

	SearchByName(ctx context.Context, term string, limit int) ([]shared.NameMatch, error)

	GetStats(ctx context.Context) (*Stats, error)

	// ListLowStock returns products below LowStockThreshold, scarcest first.
	ListLowStock(ctx context.Context, limit int) ([]Product, error)
}
