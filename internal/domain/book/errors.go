package book

import (
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// 图书领域错误定义
var (
	ErrBookNotFound = apperrors.ErrNotFound.WithMessage("book not found")

	ErrISBNDuplicate = apperrors.ErrDuplicate.WithMessage("isbn13 already exists")

	ErrInvalidTitle = apperrors.Validation("title must be 1-255 characters")

	ErrInvalidPrice = apperrors.Validation("price must be a non-negative amount with at most 2 decimal places")

	ErrInvalidStock = apperrors.Validation("stock_cnt must be greater than or equal to 0")

	ErrInvalidISBN = apperrors.Validation("isbn13 must contain 13 digits")

	ErrInvalidStatus = apperrors.Validation("status must be 1-20 characters")

	ErrAuthorRequired = apperrors.Validation("author_id is required")

	ErrCategoryRequired = apperrors.Validation("category_ids must contain at least one category id")

	// ErrInsufficientStock 下单时库存不足，details 里带 book_id/stock_cnt/requested
	ErrInsufficientStock = apperrors.ErrConflict.WithMessage("insufficient stock")

	// ErrBookInUse 仍被订单明细或有效评价引用，不能删除
	ErrBookInUse = apperrors.ErrConflict.WithMessage("book is referenced by orders or reviews")
)
