package category

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	NameMaxLength        = 100
	DescriptionMaxLength = 500
	DefaultSearchLimit   = 10
	MaxSearchLimit       = 100
)

// CategoryRequest is the body of POST and PUT /api/categories.
// PUT is a full replace, so both use the same shape.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Normalize trims surrounding whitespace.
func (r *CategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Category name is required"),
			validation.RuneLength(1, NameMaxLength).Error("Category name must be between 1 and 100 characters"),
		),
		validation.Field(&r.Description,
			validation.RuneLength(0, DescriptionMaxLength).Error("Description cannot exceed 500 characters"),
		),
	)
}

func (r CategoryRequest) ToCategory() *Category {
	return &Category{
		Name:        r.Name,
		Description: r.Description,
	}
}
