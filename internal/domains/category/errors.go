package category

import "inventory-backend/internal/shared/apperr"

var (
	ErrCategoryNotFound = &apperr.Error{
		Kind:    apperr.KindNotFound,
		Code:    "CATEGORY_NOT_FOUND",
		Message: "Category not found",
	}

	ErrCategoryNameExists = &apperr.Error{
		Kind:    apperr.KindDuplicateName,
		Code:    "CATEGORY_NAME_EXISTS",
		Message: "Category name already exists",
	}

	ErrCategoryInUse = &apperr.Error{
		Kind:    apperr.KindCategoryInUse,
		Code:    "CATEGORY_IN_USE",
		Message: "Cannot delete category that is being used by products",
	}

	ErrSearchTermRequired = &apperr.Error{
		Kind:    apperr.KindValidation,
		Code:    "SEARCH_TERM_REQUIRED",
		Message: "Search term is required",
	}
)
