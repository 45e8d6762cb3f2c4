package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-api/internal/application/social"
	"github.com/xiebiao/bookstore-api/internal/domain/review"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// ReviewHandler 书评、评论、点赞HTTP处理器
type ReviewHandler struct {
	reviewUseCase *social.ReviewUseCase
	reviewService review.Service
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(reviewUseCase *social.ReviewUseCase, reviewService review.Service) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase, reviewService: reviewService}
}

// =========================================
// 书评
// =========================================

// CreateReview 发表书评
// @Summary      发表书评
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReviewRequest true "书评"
// @Success      201 {object} dto.ReviewResponse
// @Failure      400 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.reviewUseCase.Create(c.Request.Context(), middleware.MustGetPrincipal(c), req.UserID, review.CreateParams{
		BookID:  req.BookID,
		Rating:  req.Rating,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewReviewResponse(r))
}

// ListReviews 书评列表
// @Summary      书评列表
// @Description  公开接口，按 book_id / user_id 过滤，最新在前
// @Tags         书评
// @Produce      json
// @Param        book_id query int false "图书ID"
// @Param        user_id query int false "用户ID"
// @Success      200 {array} dto.ReviewResponse
// @Failure      400 {object} response.ErrorBody
// @Router       /reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	bookID, ok := queryUint(c, "book_id")
	if !ok {
		return
	}
	userID, ok := queryUint(c, "user_id")
	if !ok {
		return
	}
	reviews, err := h.reviewService.List(c.Request.Context(), review.ListFilter{BookID: bookID, UserID: userID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewListResponse(reviews))
}

// GetReview 书评详情
// @Summary      书评详情
// @Tags         书评
// @Produce      json
// @Param        id path int true "书评ID"
// @Success      200 {object} dto.ReviewResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	r, err := h.reviewService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(r))
}

// UpdateReview 修改书评
// @Summary      修改书评
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Param        request body dto.UpdateReviewRequest true "修改内容"
// @Success      200 {object} dto.ReviewResponse
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.reviewService.Update(c.Request.Context(), middleware.MustGetPrincipal(c), id, review.UpdateParams{
		Rating:  req.Rating,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(r))
}

// DeleteReview 删除书评（软删除）
// @Summary      删除书评
// @Tags         书评
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), middleware.MustGetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// =========================================
// 评论
// =========================================

// CreateComment 发表评论或回复
// @Summary      发表评论
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Param        request body dto.CreateCommentRequest true "评论"
// @Success      201 {object} dto.CommentResponse
// @Failure      400 {object} response.ErrorBody "父评论不属于该书评"
// @Failure      404 {object} response.ErrorBody
// @Router       /reviews/{id}/comments [post]
func (h *ReviewHandler) CreateComment(c *gin.Context) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.reviewUseCase.Comment(c.Request.Context(), middleware.MustGetPrincipal(c), social.AddCommentRequest{
		UserID:   req.UserID,
		ReviewID: reviewID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewCommentResponse(comment))
}

// ListComments 评论列表
// @Summary      评论列表
// @Description  平铺返回，最早在前，树形结构由 parent_id 表达
// @Tags         评论
// @Produce      json
// @Param        id path int true "书评ID"
// @Success      200 {array} dto.CommentResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /reviews/{id}/comments [get]
func (h *ReviewHandler) ListComments(c *gin.Context) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}
	comments, err := h.reviewService.ListComments(c.Request.Context(), reviewID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCommentListResponse(comments))
}

// UpdateComment 修改评论
// @Summary      修改评论
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Param        request body dto.UpdateCommentRequest true "内容"
// @Success      200 {object} dto.CommentResponse
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /comments/{id} [put]
func (h *ReviewHandler) UpdateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.reviewService.EditComment(c.Request.Context(), middleware.MustGetPrincipal(c), id, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCommentResponse(comment))
}

// DeleteComment 删除评论（软删除，子评论保留）
// @Summary      删除评论
// @Tags         评论
// @Security     BearerAuth
// @Param        id path int true "评论ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /comments/{id} [delete]
func (h *ReviewHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.reviewService.DeleteComment(c.Request.Context(), middleware.MustGetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// =========================================
// 点赞
// =========================================

// Like 点赞
// @Summary      点赞书评
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Success      201 {object} dto.LikeResponse
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody "重复点赞"
// @Router       /reviews/{id}/like [post]
func (h *ReviewHandler) Like(c *gin.Context) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}
	like, err := h.reviewService.Like(c.Request.Context(), middleware.MustGetPrincipal(c).UserID, reviewID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.LikeResponse{UserID: like.UserID, ReviewID: like.ReviewID, CreatedAt: like.CreatedAt})
}

// Unlike 取消点赞
// @Summary      取消点赞
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} response.ErrorBody "未点赞"
// @Router       /reviews/{id}/like [delete]
func (h *ReviewHandler) Unlike(c *gin.Context) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}
	principal := middleware.MustGetPrincipal(c)
	if err := h.reviewService.Unlike(c.Request.Context(), principal.UserID, reviewID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"user_id":   principal.UserID,
		"review_id": reviewID,
		"liked":     false,
	})
}
