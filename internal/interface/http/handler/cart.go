package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-api/internal/application/social"
	"github.com/xiebiao/bookstore-api/internal/domain/cart"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	cartUseCase *social.CartUseCase
	cartService cart.Service
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *social.CartUseCase, cartService cart.Service) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase, cartService: cartService}
}

// Add 加入购物车
// @Summary      加入购物车
// @Description  已有有效行时累加数量并刷新单价（200），否则新建（201）
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddToCartRequest true "图书和数量"
// @Success      200 {object} dto.CartItemResponse "合并到已有行"
// @Success      201 {object} dto.CartItemResponse "新建"
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, merged, err := h.cartUseCase.Add(c.Request.Context(), middleware.MustGetPrincipal(c), social.AddToCartRequest{
		UserID:   req.UserID,
		BookID:   req.BookID,
		Quantity: quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if merged {
		response.Success(c, dto.NewCartItemResponse(item))
		return
	}
	response.Created(c, dto.NewCartItemResponse(item))
}

// List 购物车列表
// @Summary      购物车列表
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        user_id query int false "用户ID（管理员）"
// @Success      200 {array} dto.CartItemResponse
// @Router       /cart [get]
func (h *CartHandler) List(c *gin.Context) {
	userID, ok := queryUint(c, "user_id")
	if !ok {
		return
	}
	items, err := h.cartUseCase.List(c.Request.Context(), middleware.MustGetPrincipal(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartListResponse(items))
}

// Update 修改数量
// @Summary      修改购物车数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "购物车行ID"
// @Param        request body dto.UpdateCartRequest true "数量"
// @Success      200 {object} dto.CartItemResponse
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /cart/{id} [put]
func (h *CartHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.cartService.UpdateQuantity(c.Request.Context(), middleware.MustGetPrincipal(c), id, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartItemResponse(item))
}

// Remove 移出购物车（软删除）
// @Summary      移出购物车
// @Tags         购物车
// @Security     BearerAuth
// @Param        id path int true "购物车行ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /cart/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cartService.Remove(c.Request.Context(), middleware.MustGetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
