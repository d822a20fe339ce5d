package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-backend/internal/domains/category"
	"inventory-backend/internal/shared/apperr"
	"inventory-backend/internal/testutil/pgtest"
)

var srv *pgtest.Server

func TestMain(m *testing.M) {
	os.Exit(pgtest.Main(m, 54329, &srv))
}

func setup(t *testing.T) (category.Repository, *pgtest.Server) {
	s := pgtest.Require(t, srv)
	return NewPostgresRepository(s.Pool), s
}

func mustCreate(t *testing.T, repo category.Repository, name string) *category.Category {
	t.Helper()
	c, err := repo.Create(context.Background(), &category.Category{Name: name, Description: name + " items"})
	require.NoError(t, err)
	return c
}

func linkProduct(t *testing.T, s *pgtest.Server, name string, categoryIDs ...int64) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	require.NoError(t, s.Pool.QueryRow(ctx,
		`INSERT INTO products (name, quantity) VALUES ($1, 1) RETURNING id`, name).Scan(&id))
	for _, cid := range categoryIDs {
		_, err := s.Pool.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`, id, cid)
		require.NoError(t, err)
	}
	return id
}

func TestCreateAndGet(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()

	created := mustCreate(t, repo, "Electronics")
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Electronics", created.Name)
	assert.Equal(t, "Electronics items", created.Description)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, _ := setup(t)

	mustCreate(t, repo, "Tools")
	_, err := repo.Create(context.Background(), &category.Category{Name: "Tools"})

	assert.Equal(t, apperr.KindDuplicateName, apperr.KindOf(err))

	// Uniqueness is case-sensitive.
	_, err = repo.Create(context.Background(), &category.Category{Name: "tools"})
	assert.NoError(t, err)
}

func TestListAll_OrderedByName(t *testing.T) {
	repo, _ := setup(t)

	mustCreate(t, repo, "Garden")
	mustCreate(t, repo, "Books")
	mustCreate(t, repo, "Electronics")

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Books", "Electronics", "Garden"}, names)
}

func TestListAll_Empty(t *testing.T) {
	repo, _ := setup(t)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestUpdate(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()

	c := mustCreate(t, repo, "Toys")

	updated, err := repo.Update(ctx, c.ID, &category.Category{Name: "Games", Description: ""})
	require.NoError(t, err)
	assert.Equal(t, c.ID, updated.ID)
	assert.Equal(t, "Games", updated.Name)
	assert.Equal(t, "", updated.Description, "update is a full replace")
	assert.False(t, updated.UpdatedAt.Before(c.UpdatedAt))

	_, err = repo.Update(ctx, c.ID+100, &category.Category{Name: "Nope"})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	other := mustCreate(t, repo, "Sports")
	_, err = repo.Update(ctx, other.ID, &category.Category{Name: "Games"})
	assert.Equal(t, apperr.KindDuplicateName, apperr.KindOf(err))
}

func TestDelete(t *testing.T) {
	repo, s := setup(t)
	ctx := context.Background()

	used := mustCreate(t, repo, "Kitchen")
	unused := mustCreate(t, repo, "Office")
	linkProduct(t, s, "Kettle", used.ID)

	removed, err := repo.Delete(ctx, used.ID)
	assert.ErrorIs(t, err, category.ErrCategoryInUse)
	assert.False(t, removed)

	_, err = repo.GetByID(ctx, used.ID)
	assert.NoError(t, err, "category in use is not removed")

	removed, err = repo.Delete(ctx, unused.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, unused.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestListWithProductCount(t *testing.T) {
	repo, s := setup(t)

	a := mustCreate(t, repo, "Alpha")
	b := mustCreate(t, repo, "Beta")
	mustCreate(t, repo, "Gamma")

	linkProduct(t, s, "p1", a.ID, b.ID)
	linkProduct(t, s, "p2", a.ID)
	linkProduct(t, s, "p3", a.ID)

	rows, err := repo.ListWithProductCount(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	counts := map[string]int64{}
	for _, r := range rows {
		counts[r.Name] = r.ProductCount
	}
	assert.Equal(t, map[string]int64{"Alpha": 3, "Beta": 1, "Gamma": 0}, counts)
	assert.Equal(t, "Alpha", rows[0].Name)
	assert.Equal(t, "Gamma", rows[2].Name)
}

func TestNameExists(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()

	c := mustCreate(t, repo, "Audio")

	exists, err := repo.NameExists(ctx, "Audio", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.NameExists(ctx, "Audio", &c.ID)
	require.NoError(t, err)
	assert.False(t, exists, "own id is excluded")

	exists, err = repo.NameExists(ctx, "audio", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSearchByName(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()

	for _, n := range []string{"Home Office", "Office", "Outdoor", "100% Cotton"} {
		mustCreate(t, repo, n)
	}

	matches, err := repo.SearchByName(ctx, "Office", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Home Office", matches[0].Name)
	assert.Equal(t, "Office", matches[1].Name)

	matches, err = repo.SearchByName(ctx, "Office", 1)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = repo.SearchByName(ctx, "%", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1, "percent sign is matched literally")
	assert.Equal(t, "100% Cotton", matches[0].Name)
}

func TestCountExisting(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()

	a := mustCreate(t, repo, "A")
	b := mustCreate(t, repo, "B")

	n, err := repo.CountExisting(ctx, []int64{a.ID, b.ID, 9999})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.CountExisting(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDelete_ForeignKeyRaceIsCategoryInUse(t *testing.T) {
	_, s := setup(t)
	ctx := context.Background()

	var id int64
	require.NoError(t, s.Pool.QueryRow(ctx, `INSERT INTO categories (name) VALUES ('Race') RETURNING id`).Scan(&id))
	linkProduct(t, s, "racer", id)

	// Bypass the usage count and hit the RESTRICT constraint directly.
	_, err := s.Pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	translated := apperr.FromPg(err, apperr.OpDelete)
	assert.True(t, errors.Is(translated, apperr.ErrCategoryInUse))
}
