package category

import (
	"context"

	"inventory-backend/internal/shared"
)

type Service interface {
	ListAll(ctx context.Context) ([]Category, error)
	ListWithProductCount(ctx context.Context) ([]CategoryWithCount, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, req CategoryRequest) (*Category, error)
	Update(ctx context.Context, id int64, req CategoryRequest) (*Category, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string, limit int) ([]shared.NameMatch, error)

	// RefreshCache drops the cached category list and reloads it.
	RefreshCache(ctx context.Context) error
}
