package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"inventory-backend/internal/domains/product"
	"inventory-backend/internal/shared"
	"inventory-backend/internal/shared/apperr"
	"inventory-backend/internal/shared/pagination"
	"inventory-backend/pkg/database"
	"inventory-backend/pkg/logger"
)

type postgresRepository struct {
	pool database.Pool
}

func NewPostgresRepository(pool database.Pool) product.Repository {
	return &postgresRepository{pool: pool}
}

func query(ctx context.Context, db database.DBTX, b sq.Sqlizer) (pgx.Rows, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return db.Query(ctx, sql, args...)
}

func queryRow(ctx context.Context, db database.DBTX, b sq.Sqlizer) pgx.Row {
	sql, args, err := b.ToSql()
	if err != nil {
		return errRow{err: fmt.Errorf("failed to build query: %w", err)}
	}
	return db.QueryRow(ctx, sql, args...)
}

func exec(ctx context.Context, db database.DBTX, b sq.Sqlizer) (int64, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// ========== READ ==========

func (r *postgresRepository) List(ctx context.Context, f product.Filter) (*product.ListResult, error) {
	f.Page, f.Limit = pagination.Normalize(f.Page, f.Limit)

	rows, err := query(ctx, r.pool, buildPageQuery(f))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var total int64
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (product.Product, error) {
		var p product.Product
		err := row.Scan(
			&p.ID, &p.Name, &p.Description, &p.Quantity, &p.CreatedAt, &p.UpdatedAt,
			&p.Categories, &p.CategoryIDs,
			&total,
		)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	// An empty page does not carry the window count; ask for it directly.
	if len(products) == 0 && f.Page > 1 {
		if err := queryRow(ctx, r.pool, buildCountQuery(f)).Scan(&total); err != nil {
			return nil, fmt.Errorf("failed to count products: %w", err)
		}
	}

	return &product.ListResult{
		Products:   products,
		Pagination: pagination.New(f.Page, f.Limit, total),
	}, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return getByID(ctx, r.pool, id)
}

func getByID(ctx context.Context, db database.DBTX, id int64) (*product.Product, error) {
	var p product.Product
	err := queryRow(ctx, db, buildGetQuery(id)).Scan(
		&p.ID, &p.Name, &p.Description, &p.Quantity, &p.CreatedAt, &p.UpdatedAt,
		&p.Categories, &p.CategoryIDs,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}

	return &p, nil
}

func (r *postgresRepository) NameExists(ctx context.Context, name string, excludeID *int64) (bool, error) {
	var one int
	err := queryRow(ctx, r.pool, buildNameExistsQuery(name, excludeID)).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check product name: %w", err)
	}
	return true, nil
}

func (r *postgresRepository) SearchByName(ctx context.Context, term string, limit int) ([]shared.NameMatch, error) {
	rows, err := query(ctx, r.pool, buildSearchQuery(term, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	matches, err := pgx.CollectRows(rows, pgx.RowToStructByPos[shared.NameMatch])
	if err != nil {
		return nil, fmt.Errorf("failed to scan product matches: %w", err)
	}

	return matches, nil
}

func (r *postgresRepository) GetStats(ctx context.Context) (*product.Stats, error) {
	var (
		s   product.Stats
		avg string
	)

	err := queryRow(ctx, r.pool, buildStatsQuery()).Scan(
		&s.TotalProducts, &s.TotalQuantity, &avg, &s.MinQuantity, &s.MaxQuantity, &s.LowStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get product stats: %w", err)
	}

	s.AvgQuantity, err = decimal.NewFromString(avg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse average quantity %q: %w", avg, err)
	}

	return &s, nil
}

func (r *postgresRepository) ListLowStock(ctx context.Context, limit int) ([]product.Product, error) {
	rows, err := query(ctx, r.pool, buildLowStockQuery(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (product.Product, error) {
		var p product.Product
		err := row.Scan(
			&p.ID, &p.Name, &p.Description, &p.Quantity, &p.CreatedAt, &p.UpdatedAt,
			&p.Categories, &p.CategoryIDs,
		)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan low stock products: %w", err)
	}

	return products, nil
}

// ========== WRITE ==========

func (r *postgresRepository) Create(ctx context.Context, p *product.Product, categoryIDs []int64) (*product.Product, error) {
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*product.Product, error) {
		var id int64
		err := queryRow(ctx, tx, psql.Insert("products").
			Columns("name", "description", "quantity").
			Values(p.Name, p.Description, p.Quantity).
			Suffix("RETURNING id"),
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert product: %w", err)
		}

		if err := insertAssociations(ctx, tx, id, categoryIDs); err != nil {
			return nil, err
		}

		return getByID(ctx, tx, id)
	})
	if err != nil {
		err = apperr.TxFailure(err, apperr.OpWrite)
		logger.Error("Create product: transaction rolled back", err)
		return nil, err
	}

	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, p *product.Product, categoryIDs []int64) (*product.Product, error) {
	updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*product.Product, error) {
		affected, err := exec(ctx, tx, psql.Update("products").
			Set("name", p.Name).
			Set("description", p.Description).
			Set("quantity", p.Quantity).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"id": id}),
		)
		if err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
		if affected == 0 {
			return nil, product.ErrProductNotFound
		}

		// Replace, not merge: the new set fully supersedes the old one.
		if _, err := exec(ctx, tx, psql.Delete("product_categories").Where(sq.Eq{"product_id": id})); err != nil {
			return nil, fmt.Errorf("clear product categories: %w", err)
		}

		if err := insertAssociations(ctx, tx, id, categoryIDs); err != nil {
			return nil, err
		}

		return getByID(ctx, tx, id)
	})
	if err != nil {
		err = apperr.TxFailure(err, apperr.OpWrite)
		if apperr.KindOf(err) != apperr.KindNotFound {
			logger.Error("Update product: transaction rolled back", err)
		}
		return nil, err
	}

	return updated, nil
}

func insertAssociations(ctx context.Context, tx pgx.Tx, productID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	b := psql.Insert("product_categories").Columns("product_id", "category_id")
	for _, cid := range categoryIDs {
		b = b.Values(productID, cid)
	}
	// Duplicate ids in the request collapse onto one association.
	b = b.Suffix("ON CONFLICT DO NOTHING")

	if _, err := exec(ctx, tx, b); err != nil {
		return fmt.Errorf("insert product categories: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := exec(ctx, r.pool, psql.Delete("products").Where(sq.Eq{"id": id}))
	if err != nil {
		return false, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return affected > 0, nil
}

func (r *postgresRepository) DeleteMany(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := query(ctx, r.pool, psql.Delete("products").
		Where("id = ANY(?)", ids).
		Suffix("RETURNING id"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk delete products: %w", err)
	}

	deleted, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to bulk delete products: %w", err)
	}

	return deleted, nil
}
