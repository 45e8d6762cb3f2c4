package dto

import (
	"time"

	"github.com/xiebiao/bookstore-api/internal/domain/cart"
	"github.com/xiebiao/bookstore-api/internal/domain/review"
	"github.com/xiebiao/bookstore-api/internal/domain/wishlist"
)

// =========================================
// 购物车
// =========================================

// AddToCartRequest 加入购物车，quantity 默认 1
type AddToCartRequest struct {
	UserID   *uint `json:"user_id"`
	BookID   uint  `json:"book_id" binding:"required" example:"1"`
	Quantity *int  `json:"quantity" example:"1"`
}

// UpdateCartRequest 修改数量
type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required" example:"2"`
}

// CartItemResponse 购物车行
type CartItemResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	BookID    uint      `json:"book_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unit_price" example:"59.90"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCartItemResponse 领域实体 → 响应
func NewCartItemResponse(i *cart.Item) CartItemResponse {
	return CartItemResponse{
		ID:        i.ID,
		UserID:    i.UserID,
		BookID:    i.BookID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice.StringFixed(2),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// NewCartListResponse 购物车列表
func NewCartListResponse(items []*cart.Item) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, NewCartItemResponse(i))
	}
	return out
}

// =========================================
// 心愿单
// =========================================

// AddToWishlistRequest 加入心愿单
type AddToWishlistRequest struct {
	UserID *uint `json:"user_id"`
	BookID uint  `json:"book_id" binding:"required" example:"1"`
}

// WishlistItemResponse 心愿单条目
type WishlistItemResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	BookID    uint      `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWishlistItemResponse 领域实体 → 响应
func NewWishlistItemResponse(i *wishlist.Item) WishlistItemResponse {
	return WishlistItemResponse{ID: i.ID, UserID: i.UserID, BookID: i.BookID, CreatedAt: i.CreatedAt}
}

// NewWishlistResponse 心愿单列表
func NewWishlistResponse(items []*wishlist.Item) []WishlistItemResponse {
	out := make([]WishlistItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, NewWishlistItemResponse(i))
	}
	return out
}

// =========================================
// 书评、评论
// =========================================

// CreateReviewRequest 发表书评
// rating 范围在领域层校验
type CreateReviewRequest struct {
	UserID  *uint  `json:"user_id"`
	BookID  uint   `json:"book_id" binding:"required" example:"1"`
	Rating  int    `json:"rating" binding:"required" example:"5"`
	Title   string `json:"title" example:"Must read"`
	Content string `json:"content"`
}

// UpdateReviewRequest 部分更新书评
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ReviewResponse 书评响应
type ReviewResponse struct {
	ID        uint      `json:"id"`
	BookID    uint      `json:"book_id"`
	UserID    uint      `json:"user_id"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReviewResponse 领域实体 → 响应
func NewReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Title:     r.Title,
		Content:   r.Content,
		LikeCount: r.LikeCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewReviewListResponse 书评列表
func NewReviewListResponse(reviews []*review.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReviewResponse(r))
	}
	return out
}

// CreateCommentRequest 发表评论，parent_id 非空时为回复
type CreateCommentRequest struct {
	UserID   *uint  `json:"user_id"`
	ParentID *uint  `json:"parent_id"`
	Content  string `json:"content" binding:"required,notblank"`
}

// UpdateCommentRequest 修改评论
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

// CommentResponse 评论响应，树形结构由 parent_id 表达
type CommentResponse struct {
	ID        uint      `json:"id"`
	ReviewID  uint      `json:"review_id"`
	UserID    uint      `json:"user_id"`
	ParentID  *uint     `json:"parent_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCommentResponse 领域实体 → 响应
func NewCommentResponse(c *review.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		ReviewID:  c.ReviewID,
		UserID:    c.UserID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewCommentListResponse 评论列表
func NewCommentListResponse(comments []*review.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}

// LikeResponse 点赞响应
type LikeResponse struct {
	UserID    uint      `json:"user_id"`
	ReviewID  uint      `json:"review_id"`
	CreatedAt time.Time `json:"created_at"`
}
