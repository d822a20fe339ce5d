package service

import (
	"context"
	"fmt"
	"strings"

	"inventory-backend/internal/domains/category"
	"inventory-backend/internal/domains/product"
	"inventory-backend/internal/shared"
	"inventory-backend/internal/shared/apperr"
	"inventory-backend/internal/shared/utils"
	"inventory-backend/pkg/logger"
)

type productService struct {
	repo         product.Repository
	categoryRepo category.Repository
}

func NewProductService(repo product.Repository, categoryRepo category.Repository) product.Service {
	return &productService{
		repo:         repo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) List(ctx context.Context, q product.ListQuery) (*product.ListResult, error) {
	if err := q.Validate(); err != nil {
		return nil, apperr.Validation("Invalid query parameters", err)
	}
	return s.repo.List(ctx, q.ToFilter())
}

func (s *productService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, req product.ProductRequest) (*product.Product, error) {
	// ========== STEP 1: Validate ==========
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation("Validation failed", err)
	}
	p, categoryIDs := req.ToProduct()

	// ========== STEP 2: Name must be unique ==========
	exists, err := s.repo.NameExists(ctx, p.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	if exists {
		return nil, product.ErrProductNameExists
	}

	// ========== STEP 3: Every category must exist ==========
	if err := s.checkCategories(ctx, categoryIDs); err != nil {
		return nil, err
	}

	// ========== STEP 4: Persist with associations ==========
	created, err := s.repo.Create(ctx, p, categoryIDs)
	if err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": created.ID,
		"name":       created.Name,
		"categories": len(categoryIDs),
	})
	return created, nil
}

func (s *productService) Update(ctx context.Context, id int64, req product.ProductRequest) (*product.Product, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation("Validation failed", err)
	}
	p, categoryIDs := req.ToProduct()

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, p.Name, &id)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if exists {
		return nil, product.ErrProductNameExists
	}

	if err := s.checkCategories(ctx, categoryIDs); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, p, categoryIDs)
	if err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
	return updated, nil
}

// checkCategories fails fast on unknown ids. The foreign key still
// guards a category deleted between this check and the insert.
func (s *productService) checkCategories(ctx context.Context, ids []int64) error {
	n, err := s.categoryRepo.CountExisting(ctx, ids)
	if err != nil {
		return fmt.Errorf("check categories: %w", err)
	}
	if n != int64(len(ids)) {
		return product.ErrInvalidCategoryIDs
	}
	return nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return product.ErrProductNotFound
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) BulkDelete(ctx context.Context, req product.BulkDeleteRequest) (*product.BulkDeleteResult, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation("Validation failed", err)
	}

	ids := utils.UniqueIDs(req.IDs)
	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	gone := make(map[int64]bool, len(deleted))
	for _, id := range deleted {
		gone[id] = true
	}

	result := &product.BulkDeleteResult{
		DeletedCount:   len(deleted),
		TotalRequested: len(ids),
		Results:        make([]product.BulkDeleteItem, 0, len(ids)),
	}
	for _, id := range ids {
		item := product.BulkDeleteItem{ID: id, Success: gone[id], Message: "Product deleted successfully"}
		if !item.Success {
			item.Message = "Product not found"
		}
		result.Results = append(result.Results, item)
	}

	logger.Info("Products bulk deleted", map[string]interface{}{
		"requested": result.TotalRequested,
		"deleted":   result.DeletedCount,
	})
	return result, nil
}

func (s *productService) Search(ctx context.Context, term string, limit int) ([]shared.NameMatch, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, product.ErrSearchTermRequired
	}

	if limit <= 0 {
		limit = product.DefaultSearchLimit
	}
	if limit > product.MaxSearchLimit {
		limit = product.MaxSearchLimit
	}

	return s.repo.SearchByName(ctx, term, limit)
}

func (s *productService) GetStats(ctx context.Context) (*product.Stats, error) {
	return s.repo.GetStats(ctx)
}

func (s *productService) LowStock(ctx context.Context, limit int) ([]product.Product, error) {
	if limit <= 0 {
		limit = product.DefaultSearchLimit
	}
	if limit > product.MaxSearchLimit {
		limit = product.MaxSearchLimit
	}
	return s.repo.ListLowStock(ctx, limit)
}
