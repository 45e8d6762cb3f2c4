package social

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/review"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
)

// ReviewUseCase 书评和评论的创建
// 查询、修改、删除、点赞直接走 review.Service
type ReviewUseCase struct {
	users   TargetResolver
	reviews review.Service
}

// NewReviewUseCase 创建书评用例
func NewReviewUseCase(users TargetResolver, reviews review.Service) *ReviewUseCase {
	return &ReviewUseCase{users: users, reviews: reviews}
}

// Create 发表书评
func (uc *ReviewUseCase) Create(ctx context.Context, actor user.Principal, requested *uint, params review.CreateParams) (*review.Review, error) {
	userID, err := uc.users.ResolveTarget(ctx, actor, requested)
	if err != nil {
		return nil, err
	}
	return uc.reviews.Create(ctx, userID, params)
}

// AddCommentRequest 发表评论请求
type AddCommentRequest struct {
	UserID   *uint
	ReviewID uint
	ParentID *uint
	Content  string
}

// Comment 发表评论或回复
func (uc *ReviewUseCase) Comment(ctx context.Context, actor user.Principal, req AddCommentRequest) (*review.Comment, error) {
	userID, err := uc.users.ResolveTarget(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}
	return uc.reviews.AddComment(ctx, userID, req.ReviewID, req.ParentID, req.Content)
}
