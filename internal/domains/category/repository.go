package category

import (
	"context"

	"inventory-backend/internal/shared"
)

// Repository is the category data access contract.
type Repository interface {
	// ListAll returns every category ordered by name.
	ListAll(ctx context.Context) ([]Category, error)

	// ListWithProductCount returns every category, including ones with no
	// products, with its distinct product count, ordered by name.
	ListWithProductCount(ctx context.Context) ([]CategoryWithCount, error)

	GetByID(ctx context.Context, id int64) (*Category, error)

	// Create inserts c and returns the stored row.
	Create(ctx context.Context, c *Category) (*Category, error)

	// Update replaces name and description. Returns ErrCategoryNotFound
	// when no row has the id.
	Update(ctx context.Context, id int64, c *Category) (*Category, error)

	// Delete refuses with ErrCategoryInUse while any product references the
	// category. removed is false when no row had the id.
	Delete(ctx context.Context, id int64) (removed bool, err error)

	// NameExists is an exact, case-sensitive match, optionally ignoring excludeID.
	NameExists(ctx context.Context, name string, excludeID *int64) (bool, error)

	SearchByName(ctx context.Context, term string, limit int) ([]shared.NameMatch, error)

	// CountExisting returns how many of ids exist.
	CountExisting(ctx context.Context, ids []int64) (int64, error)
}
