package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventory-backend/internal/domains/category"
	"inventory-backend/internal/shared"
	"inventory-backend/internal/shared/apperr"
	"inventory-backend/pkg/cache"
	"inventory-backend/pkg/logger"
)

const (
	cacheKeyAll = "categories:all"
	cacheTTL    = 10 * time.Minute
)

type categoryService struct {
	repo  category.Repository
	cache cache.Cache
}

func NewCategoryService(repo category.Repository, c cache.Cache) category.Service {
	return &categoryService{
		repo:  repo,
		cache: c,
	}
}

func (s *categoryService) ListAll(ctx context.Context) ([]category.Category, error) {
	var cached []category.Category
	if found, err := s.cache.Get(ctx, cacheKeyAll, &cached); err != nil {
		logger.Error("ListAll: cache read failed", err)
	} else if found {
		return cached, nil
	}

	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyAll, categories, cacheTTL); err != nil {
		logger.Error("ListAll: cache write failed", err)
	}

	return categories, nil
}

func (s *categoryService) ListWithProductCount(ctx context.Context) ([]category.CategoryWithCount, error) {
	return s.repo.ListWithProductCount(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, req category.CategoryRequest) (*category.Category, error) {
	// ========== STEP 1: Validate ==========
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation("Validation failed", err)
	}

	// ========== STEP 2: Name must be unique ==========
	exists, err := s.repo.NameExists(ctx, req.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	if exists {
		return nil, category.ErrCategoryNameExists
	}

	// ========== STEP 3: Persist ==========
	created, err := s.repo.Create(ctx, req.ToCategory())
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	logger.Info("Category created", map[string]interface{}{
		"category_id": created.ID,
		"name":        created.Name,
	})
	return created, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, req category.CategoryRequest) (*category.Category, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation("Validation failed", err)
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, req.Name, &id)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if exists {
		return nil, category.ErrCategoryNameExists
	}

	updated, err := s.repo.Update(ctx, id, req.ToCategory())
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	logger.Info("Category updated", map[string]interface{}{
		"category_id": id,
	})
	return updated, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	// Deleted concurrently between the lookup and the delete.
	if !removed {
		return category.ErrCategoryNotFound
	}

	s.invalidate(ctx)

	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

func (s *categoryService) Search(ctx context.Context, term string, limit int) ([]shared.NameMatch, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, category.ErrSearchTermRequired
	}

	if limit <= 0 {
		limit = category.DefaultSearchLimit
	}
	if limit > category.MaxSearchLimit {
		limit = category.MaxSearchLimit
	}

	return s.repo.SearchByName(ctx, term, limit)
}

func (s *categoryService) RefreshCache(ctx context.Context) error {
	if err := s.cache.Delete(ctx, cacheKeyAll); err != nil {
		return fmt.Errorf("refresh category cache: %w", err)
	}

	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	if err := s.cache.Set(ctx, cacheKeyAll, categories, cacheTTL); err != nil {
		return fmt.Errorf("refresh category cache: %w", err)
	}
	return nil
}

func (s *categoryService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyAll); err != nil {
		logger.Error("category cache invalidation failed", err)
	}
}
