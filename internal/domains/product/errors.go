package product

import "inventory-backend/internal/shared/apperr"

var (
	ErrProductNotFound = &apperr.Error{
		Kind:    apperr.KindNotFound,
		Code:    "PRODUCT_NOT_FOUND",
		Message: "Product not found",
	}

	ErrProductNameExists = &apperr.Error{
		Kind:    apperr.KindDuplicateName,
		Code:    "PRODUCT_NAME_EXISTS",
		Message: "Product name already exists",
	}

	ErrInvalidCategoryIDs = &apperr.Error{
		Kind:    apperr.KindInvalidCategoryReference,
		Code:    "INVALID_CATEGORY_IDS",
		Message: "One or more category IDs are invalid",
	}

	ErrSearchTermRequired = &apperr.Error{
		Kind:    apperr.KindValidation,
		Code:    "SEARCH_TERM_REQUIRED",
		Message: "Search term is required",
	}
)
