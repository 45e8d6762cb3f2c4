package author

import (
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

var (
	ErrAuthorNotFound = apperrors.ErrNotFound.WithMessage("author not found")

	ErrInvalidName = apperrors.Validation("author name must be 1-150 characters")

	// ErrAuthorInUse 仍有图书引用该作者
	ErrAuthorInUse = apperrors.ErrConflict.WithMessage("author is referenced by books")
)
