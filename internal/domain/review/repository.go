package review

import (
	"context"
)

// Repository 书评仓储接口，所有查询排除软删除行
type Repository interface {
	Create(ctx context.Context, review *Review) error

	// FindByID 带出 LikeCount
	FindByID(ctx context.Context, id uint) (*Review, error)

	// List 按创建时间倒序，带出 LikeCount
	List(ctx context.Context, filter ListFilter) ([]*Review, error)

	Update(ctx context.Context, review *Review) error

	SoftDelete(ctx context.Context, id uint) error
}

// ListFilter 书评列表过滤条件
type ListFilter struct {
	BookID *uint
	UserID *uint
}

// CommentRepository 评论仓储接口
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error

	FindByID(ctx context.Context, id uint) (*Comment, error)

	// ListByReview 有效评论按创建时间正序，父评论已删除的子评论照常返回
	ListByReview(ctx context.Context, reviewID uint) ([]*Comment, error)

	Update(ctx context.Context, comment *Comment) error

	// SoftDelete 只删除当前节点，不级联
	SoftDelete(ctx context.Context, id uint) error
}

// LikeRepository 点赞仓储接口
type LikeRepository interface {
	// Create 重复返回 ErrAlreadyLiked
	Create(ctx context.Context, like *Like) error

	// Delete 物理删除，不存在返回 ErrLikeNotFound
	Delete(ctx context.Context, userID, reviewID uint) error
}
