package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"inventory-backend/internal/domains/category"
	"inventory-backend/internal/shared"
	"inventory-backend/internal/shared/apperr"
	"inventory-backend/internal/shared/utils"
	"inventory-backend/pkg/database"
	"inventory-backend/pkg/logger"
)

type postgresRepository struct {
	pool database.Pool
}

func NewPostgresRepository(pool database.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

const selectColumns = `id, name, description, created_at, updated_at`

func scanCategory(row pgx.Row) (*category.Category, error) {
	c := &category.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]category.Category, error) {
	const query = `
		SELECT ` + selectColumns + `
		FROM categories
		ORDER BY name ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (category.Category, error) {
		c, err := scanCategory(row)
		if err != nil {
			return category.Category{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	return categories, nil
}

func (r *postgresRepository) ListWithProductCount(ctx context.Context) ([]category.CategoryWithCount, error) {
	// LEFT JOIN keeps categories without products; COUNT over the nullable
	// column then yields 0 for them.
	const query = `
		SELECT c.id, c.name, c.description, c.created_at, c.updated_at,
		       COUNT(DISTINCT pc.product_id) AS product_count
		FROM categories c
		LEFT JOIN product_categories pc ON pc.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name ASC, c.id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories with product count: %w", err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (category.CategoryWithCount, error) {
		var c category.CategoryWithCount
		err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.ProductCount)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories with product count: %w", err)
	}

	return result, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	const query = `
		SELECT ` + selectColumns + `
		FROM categories
		WHERE id = $1
	`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}

	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	const query = `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	if err := r.pool.QueryRow(ctx, query, c.Name, c.Description).Scan(&id); err != nil {
		if translated := apperr.FromPg(err, apperr.OpWrite); translated != err {
			return nil, translated
		}
		logger.Error("Create category: database error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) Update(ctx context.Context, id int64, c *category.Category) (*category.Category, error) {
	const query = `
		UPDATE categories
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, c.Name, c.Description)
	if err != nil {
		if translated := apperr.FromPg(err, apperr.OpWrite); translated != err {
			return nil, translated
		}
		logger.Error("Update category: database error", err)
		return nil, fmt.Errorf("failed to update category %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return nil, category.ErrCategoryNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const usageQuery = `SELECT COUNT(*) FROM product_categories WHERE category_id = $1`

	var usage int64
	if err := r.pool.QueryRow(ctx, usageQuery, id).Scan(&usage); err != nil {
		return false, fmt.Errorf("failed to count category usage: %w", err)
	}
	if usage > 0 {
		return false, category.ErrCategoryInUse
	}

	const query = `DELETE FROM categories WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		// A product may have been linked between the count and the delete;
		// the RESTRICT foreign key catches it.
		if translated := apperr.FromPg(err, apperr.OpDelete); apperr.KindOf(translated) == apperr.KindCategoryInUse {
			return false, category.ErrCategoryInUse
		}
		return false, fmt.Errorf("failed to delete category %d: %w", id, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) NameExists(ctx context.Context, name string, excludeID *int64) (bool, error) {
	var query string
	var args []interface{}

	if excludeID == nil {
		query = "SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)"
		args = []interface{}{name}
	} else {
		query = "SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)"
		args = []interface{}{name, *excludeID}
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) SearchByName(ctx context.Context, term string, limit int) ([]shared.NameMatch, error) {
	const query = `
		SELECT id, name
		FROM categories
		WHERE name LIKE $1
		ORDER BY name ASC, id ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, utils.ContainsPattern(term), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}

	matches, err := pgx.CollectRows(rows, pgx.RowToStructByPos[shared.NameMatch])
	if err != nil {
		return nil, fmt.Errorf("failed to scan category matches: %w", err)
	}

	return matches, nil
}

func (r *postgresRepository) CountExisting(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	const query = `SELECT COUNT(*) FROM categories WHERE id = ANY($1)`

	var count int64
	if err := r.pool.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to validate category ids: %w", err)
	}

	return count, nil
}
