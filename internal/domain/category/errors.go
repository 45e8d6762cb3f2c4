package category

import (
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

var (
	ErrCategoryNotFound = apperrors.ErrNotFound.WithMessage("category not found")

	ErrCategoryDuplicate = apperrors.ErrDuplicate.WithMessage("category name or slug already exists")

	ErrInvalidName = apperrors.Validation("category name must be 1-100 characters")

	ErrInvalidSlug = apperrors.Validation("slug must be lowercase letters, digits and hyphens, at most 120 characters")
)
