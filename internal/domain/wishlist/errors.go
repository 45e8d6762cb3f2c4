package wishlist

import (
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// 心愿单领域错误定义
var (
	ErrItemNotFound = apperrors.ErrNotFound.WithMessage("wishlist item not found")

	ErrAlreadyWished = apperrors.ErrDuplicate.WithMessage("book already in wishlist")
)
