package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-api/internal/application/social"
	"github.com/xiebiao/bookstore-api/internal/domain/wishlist"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// WishlistHandler 心愿单HTTP处理器
type WishlistHandler struct {
	wishlistUseCase *social.WishlistUseCase
	wishlistService wishlist.Service
}

// NewWishlistHandler 创建心愿单处理器
func NewWishlistHandler(wishlistUseCase *social.WishlistUseCase, wishlistService wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlistUseCase: wishlistUseCase, wishlistService: wishlistService}
}

// Add 加入心愿单
// @Summary      加入心愿单
// @Tags         心愿单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddToWishlistRequest true "图书"
// @Success      201 {object} dto.WishlistItemResponse
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody "已在心愿单中"
// @Router       /wishlists [post]
func (h *WishlistHandler) Add(c *gin.Context) {
	var req dto.AddToWishlistRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.wishlistUseCase.Add(c.Request.Context(), middleware.MustGetPrincipal(c), req.UserID, req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewWishlistItemResponse(item))
}

// ListAll 全部有效心愿单（管理员）
// @Summary      全部心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.WishlistItemResponse
// @Failure      403 {object} response.ErrorBody
// @Router       /wishlists [get]
func (h *WishlistHandler) ListAll(c *gin.Context) {
	items, err := h.wishlistService.ListAll(c.Request.Context(), middleware.MustGetPrincipal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewWishlistResponse(items))
}

// Mine 当前用户的心愿单
// @Summary      我的心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.WishlistItemResponse
// @Router       /wishlists/me [get]
func (h *WishlistHandler) Mine(c *gin.Context) {
	items, err := h.wishlistService.ListByUser(c.Request.Context(), middleware.MustGetPrincipal(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewWishlistResponse(items))
}

// Remove 移出心愿单（软删除）
// @Summary      移出心愿单
// @Tags         心愿单
// @Security     BearerAuth
// @Param        id path int true "心愿单条目ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /wishlists/{id} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.wishlistService.Remove(c.Request.Context(), middleware.MustGetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
