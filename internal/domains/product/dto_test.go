package product

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-backend/internal/shared/pagination"
)

func ptr(n int64) *int64 { return &n }

func TestProductRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       ProductRequest
		wantField string
	}{
		{name: "valid", req: ProductRequest{Name: "Lamp", Quantity: ptr(0), CategoryIDs: []int64{1}}},
		{name: "max lengths", req: ProductRequest{
			Name: strings.Repeat("ü", 255), Description: strings.Repeat("d", 1000), Quantity: ptr(1), CategoryIDs: []int64{1},
		}},
		{name: "missing name", req: ProductRequest{Quantity: ptr(1), CategoryIDs: []int64{1}}, wantField: "name"},
		{name: "long name", req: ProductRequest{Name: strings.Repeat("n", 256), Quantity: ptr(1), CategoryIDs: []int64{1}}, wantField: "name"},
		{name: "long description", req: ProductRequest{Name: "x", Description: strings.Repeat("d", 1001), Quantity: ptr(1), CategoryIDs: []int64{1}}, wantField: "description"},
		{name: "missing quantity", req: ProductRequest{Name: "x", CategoryIDs: []int64{1}}, wantField: "quantity"},
		{name: "negative quantity", req: ProductRequest{Name: "x", Quantity: ptr(-5), CategoryIDs: []int64{1}}, wantField: "quantity"},
		{name: "empty categories", req: ProductRequest{Name: "x", Quantity: ptr(1), CategoryIDs: []int64{}}, wantField: "categoryIds"},
		{name: "non-positive category", req: ProductRequest{Name: "x", Quantity: ptr(1), CategoryIDs: []int64{1, 0}}, wantField: "categoryIds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tt.wantField)
			assert.Len(t, verrs, 1)
		})
	}
}

func TestProductRequest_ToProduct(t *testing.T) {
	req := ProductRequest{Name: "  Lamp ", Description: " warm ", Quantity: ptr(4), CategoryIDs: []int64{3, 1, 3}}
	req.Normalize()

	p, ids := req.ToProduct()
	assert.Equal(t, &Product{Name: "Lamp", Description: "warm", Quantity: 4}, p)
	assert.Equal(t, []int64{3, 1}, ids)
}

func TestListQuery(t *testing.T) {
	assert.NoError(t, ListQuery{}.Validate(), "zero page and limit mean defaults")
	assert.Error(t, ListQuery{Limit: 101}.Validate())
	assert.Error(t, ListQuery{Page: -2}.Validate())
	assert.NoError(t, ListQuery{Page: pagination.MaxPage, Limit: 100}.Validate())
	assert.Error(t, ListQuery{Page: pagination.MaxPage + 1}.Validate())
	assert.Error(t, ListQuery{Page: 1 << 62, Limit: 100}.Validate(), "offset would overflow bigint")

	f := ListQuery{Search: " lamp ", CategoryIDs: []string{"2,x", "2", "-1", "5"}}.ToFilter()
	assert.Equal(t, Filter{Search: "lamp", CategoryIDs: []int64{2, 5}, Page: 1, Limit: 10}, f)
}

func TestBulkDeleteRequest_Validate(t *testing.T) {
	assert.NoError(t, BulkDeleteRequest{IDs: []int64{1, 2}}.Validate())
	assert.Error(t, BulkDeleteRequest{}.Validate())
	assert.Error(t, BulkDeleteRequest{IDs: []int64{-1}}.Validate())
	assert.Error(t, BulkDeleteRequest{IDs: make([]int64, MaxBulkDelete+1)}.Validate())
}
