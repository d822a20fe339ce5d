package product

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inventory-backend/internal/shared/pagination"
	"inventory-backend/internal/shared/utils"
)

const (
	NameMaxLength        = 255
	DescriptionMaxLength = 1000
	SearchMaxLength      = 255
	DefaultSearchLimit   = 10
	MaxSearchLimit       = 100
	MaxBulkDelete        = 100
)

// ProductRequest is the body of POST and PUT /api/products.
// PUT replaces every field including the full category set.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    *int64  `json:"quantity"`
	CategoryIDs []int64 `json:"categoryIds"`
}

func (r *ProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func positiveIDs(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		ids, _ := value.([]int64)
		for _, id := range ids {
			if id <= 0 {
				return errors.New(message)
			}
		}
		return nil
	})
}

func (r ProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Product name is required"),
			validation.RuneLength(1, NameMaxLength).Error("Product name must be between 1 and 255 characters"),
		),
		validation.Field(&r.Description,
			validation.RuneLength(0, DescriptionMaxLength).Error("Description cannot exceed 1000 characters"),
		),
		validation.Field(&r.Quantity,
			validation.NotNil.Error("Quantity is required"),
			validation.Min(int64(0)).Error("Quantity must be a non-negative integer"),
		),
		validation.Field(&r.CategoryIDs,
			validation.Required.Error("At least one category is required"),
			positiveIDs("Category IDs must be positive integers"),
		),
	)
}

// ToProduct returns the product fields and the deduplicated category set.
func (r ProductRequest) ToProduct() (*Product, []int64) {
	var qty int64
	if r.Quantity != nil {
		qty = *r.Quantity
	}
	return &Product{
		Name:        r.Name,
		Description: r.Description,
		Quantity:    qty,
	}, utils.UniqueIDs(r.CategoryIDs)
}

// ListQuery is the raw query string of GET /api/products.
type ListQuery struct {
	Search      string   `json:"search"`
	CategoryIDs []string `json:"categoryIds"`
	Page        int      `json:"page"`
	Limit       int      `json:"limit"`
}

func (q ListQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Search,
			validation.RuneLength(0, SearchMaxLength).Error("Search term cannot exceed 255 characters"),
		),
		validation.Field(&q.Page,
			validation.Min(1).Error("Page must be at least 1"),
			validation.Max(pagination.MaxPage).Error("Page cannot exceed 1000000"),
		),
		validation.Field(&q.Limit,
			validation.Min(1).Error("Limit must be at least 1"),
			validation.Max(pagination.MaxLimit).Error("Limit cannot exceed 100"),
		),
	)
}

// ToFilter trims the search term, parses the category ids and applies
// the default page and limit.
func (q ListQuery) ToFilter() Filter {
	page, limit := pagination.Normalize(q.Page, q.Limit)
	return Filter{
		Search:      strings.TrimSpace(q.Search),
		CategoryIDs: utils.ParseIDList(q.CategoryIDs),
		Page:        page,
		Limit:       limit,
	}
}

type BulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

func (r BulkDeleteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDs,
			validation.Required.Error("Product IDs array is required"),
			validation.Length(1, MaxBulkDelete).Error("Between 1 and 100 product IDs are accepted"),
			positiveIDs("Product IDs must be positive integers"),
		),
	)
}
