package category

import "time"

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryWithCount is the product-count read model. ProductCount counts
// distinct products associated with the category and is zero when none are.
type CategoryWithCount struct {
	Category
	ProductCount int64 `json:"product_count"`
}
