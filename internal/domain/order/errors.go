package order

import (
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound = apperrors.ErrNotFound.WithMessage("order not found")

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.ErrConflict.WithMessage("order status does not allow this transition")

	// ErrOrderCancelled 已取消订单不能再变更
	ErrOrderCancelled = apperrors.ErrConflict.WithMessage("order is cancelled")

	// ErrOrderNotFinished 只有已取消或已完成的订单可以删除
	ErrOrderNotFinished = apperrors.ErrConflict.WithMessage("only cancelled or completed orders can be deleted")

	ErrInvalidStatus = apperrors.Validation("invalid order status")

	ErrEmptyItems = apperrors.Validation("items must not be empty")

	ErrInvalidQuantity = apperrors.Validation("quantity must be greater than 0")

	ErrInvalidBookID = apperrors.Validation("book_id is required")
)
