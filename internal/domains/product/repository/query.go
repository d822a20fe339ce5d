package repository

import (
	sq "github.com/Masterminds/squirrel"

	"inventory-backend/internal/domains/product"
	"inventory-backend/internal/shared/pagination"
	"inventory-backend/internal/shared/utils"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// filterConditions turns a Filter into WHERE predicates on products p.
// The category filter is an EXISTS semi-join, so a product in several
// requested categories still appears once.
func filterConditions(f product.Filter) []sq.Sqlizer {
	var conds []sq.Sqlizer

	if f.Search != "" {
		conds = append(conds, sq.Expr("p.name ILIKE ?", utils.ContainsPattern(f.Search)))
	}

	if len(f.CategoryIDs) > 0 {
		conds = append(conds, sq.Expr(
			"EXISTS (SELECT 1 FROM product_categories fpc WHERE fpc.product_id = p.id AND fpc.category_id = ANY(?))",
			f.CategoryIDs,
		))
	}

	if f.AfterID > 0 {
		conds = append(conds, sq.Gt{"p.id": f.AfterID})
	}

	return conds
}

func applyFilter(b sq.SelectBuilder, f product.Filter) sq.SelectBuilder {
	for _, c := range filterConditions(f) {
		b = b.Where(c)
	}
	return b
}

// productColumns selects a product with its categories aggregated in
// category-name order. FILTER drops the NULL row a product without
// categories gets from the LEFT JOIN.
var productColumns = []string{
	"p.id",
	"p.name",
	"p.description",
	"p.quantity",
	"p.created_at",
	"p.updated_at",
	"COALESCE(array_agg(c.name ORDER BY c.name, c.id) FILTER (WHERE c.id IS NOT NULL), '{}'::text[]) AS categories",
	"COALESCE(array_agg(c.id ORDER BY c.name, c.id) FILTER (WHERE c.id IS NOT NULL), '{}'::bigint[]) AS category_ids",
}

func withCategories(b sq.SelectBuilder) sq.SelectBuilder {
	return b.
		LeftJoin("product_categories pc ON pc.product_id = p.id").
		LeftJoin("categories c ON c.id = pc.category_id")
}

// buildPageQuery selects one page of matching product ids ordered by id,
// along with the total match count (window computed before LIMIT), then
// joins the categories for just that page.
func buildPageQuery(f product.Filter) sq.SelectBuilder {
	page := applyFilter(
		sq.Select("p.id", "COUNT(*) OVER () AS total_count").From("products p"),
		f,
	).
		OrderBy("p.id ASC").
		Limit(uint64(f.Limit)).
		Offset(uint64(pagination.Offset(f.Page, f.Limit)))

	columns := append(append([]string{}, productColumns...), "pg.total_count")

	return withCategories(
		psql.Select(columns...).
			FromSelect(page, "pg").
			Join("products p ON p.id = pg.id"),
	).
		GroupBy("p.id", "pg.total_count").
		OrderBy("p.id ASC")
}

// buildCountQuery counts distinct matching products. Used when the
// requested page is past the end and the page query returns no rows.
func buildCountQuery(f product.Filter) sq.SelectBuilder {
	return applyFilter(psql.Select("COUNT(*)").From("products p"), f)
}

func buildGetQuery(id int64) sq.SelectBuilder {
	return withCategories(psql.Select(productColumns...).From("products p")).
		Where(sq.Eq{"p.id": id}).
		GroupBy("p.id")
}

func buildNameExistsQuery(name string, excludeID *int64) sq.SelectBuilder {
	b := psql.Select("1").From("products").Where(sq.Eq{"name": name})
	if excludeID != nil {
		b = b.Where(sq.NotEq{"id": *excludeID})
	}
	return b.Limit(1)
}

func buildSearchQuery(term string, limit int) sq.SelectBuilder {
	return psql.Select("id", "name").
		From("products").
		Where("name LIKE ?", utils.ContainsPattern(term)).
		OrderBy("name ASC", "id ASC").
		Limit(uint64(limit))
}

func buildLowStockQuery(limit int) sq.SelectBuilder {
	return withCategories(psql.Select(productColumns...).From("products p")).
		Where(sq.Lt{"p.quantity": product.LowStockThreshold}).
		GroupBy("p.id").
		OrderBy("p.quantity ASC", "p.id ASC").
		Limit(uint64(limit))
}

func buildStatsQuery() sq.SelectBuilder {
	return psql.Select(
		"COUNT(*)",
		"COALESCE(SUM(quantity), 0)",
		"COALESCE(ROUND(AVG(quantity), 2), 0)::text",
		"COALESCE(MIN(quantity), 0)",
		"COALESCE(MAX(quantity), 0)",
	).
		Column(sq.Expr("COUNT(*) FILTER (WHERE quantity < ?)", product.LowStockThreshold)).
		From("products")
}
