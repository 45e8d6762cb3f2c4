package review

import (
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// 书评领域错误定义
var (
	ErrReviewNotFound = apperrors.ErrNotFound.WithMessage("review not found")

	ErrCommentNotFound = apperrors.ErrNotFound.WithMessage("comment not found")

	ErrLikeNotFound = apperrors.ErrNotFound.WithMessage("like not found")

	ErrAlreadyLiked = apperrors.ErrDuplicate.WithMessage("review already liked")

	ErrInvalidRating = apperrors.Validation("rating must be between 1 and 5")

	ErrInvalidTitle = apperrors.Validation("title must be at most 255 characters")

	ErrInvalidContent = apperrors.Validation("content must be 1-2000 characters")

	ErrBookRequired = apperrors.Validation("book_id is required")

	// ErrParentMismatch 父评论属于其他书评
	ErrParentMismatch = apperrors.Validation("parent comment belongs to another review")
)
