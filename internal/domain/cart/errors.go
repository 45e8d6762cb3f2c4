package cart

import (
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// 购物车领域错误定义
var (
	ErrItemNotFound = apperrors.ErrNotFound.WithMessage("cart item not found")

	ErrInvalidQuantity = apperrors.Validation("quantity must be greater than 0")
)
