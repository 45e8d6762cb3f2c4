package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookstore-api/internal/application/order"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase  *apporder.CreateOrderUseCase
	queryOrderUseCase   *apporder.QueryOrderUseCase
	updateStatusUseCase *apporder.UpdateStatusUseCase
	deleteOrderUseCase  *apporder.DeleteOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	queryOrderUseCase *apporder.QueryOrderUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
	deleteOrderUseCase *apporder.DeleteOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase:  createOrderUseCase,
		queryOrderUseCase:   queryOrderUseCase,
		updateStatusUseCase: updateStatusUseCase,
		deleteOrderUseCase:  deleteOrderUseCase,
	}
}

// CreateOrder 创建订单
// @Summary      创建订单
// @Description  锁定库存、快照单价、计算总额并扣减库存，任一步失败整体回滚
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      201 {object} apporder.CreateOrderResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      403 {object} response.ErrorBody "为他人下单需要管理员"
// @Failure      404 {object} response.ErrorBody "图书或用户不存在"
// @Failure      409 {object} response.ErrorBody "库存不足"
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apporder.CreateOrderItem{BookID: item.BookID, Quantity: item.Quantity}
	}

	result, err := h.createOrderUseCase.Execute(c.Request.Context(), middleware.MustGetPrincipal(c), apporder.CreateOrderRequest{
		UserID: req.UserID,
		Items:  items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListOrders 订单列表
// @Summary      订单列表
// @Description  默认只返回当前用户的订单，管理员可以传 user_id 查看指定用户
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        user_id query int    false "用户ID（管理员）"
// @Param        status  query string false "订单状态"
// @Param        page    query int    false "页码"
// @Param        size    query int    false "每页数量"
// @Param        sort    query string false "排序，如 total_amount,DESC"
// @Success      200 {object} pagination.Page[apporder.OrderSummary]
// @Failure      400 {object} response.ErrorBody
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := queryUint(c, "user_id")
	if !ok {
		return
	}

	var status *order.Status
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		s, err := order.ParseStatus(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		status = &s
	}

	page, err := h.queryOrderUseCase.List(c.Request.Context(), middleware.MustGetPrincipal(c), apporder.ListOrdersRequest{
		UserID: userID,
		Status: status,
		Page:   c.Query("page"),
		Size:   c.Query("size"),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} apporder.OrderDetail
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.queryOrderUseCase.Get(c.Request.Context(), middleware.MustGetPrincipal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// UpdateStatus 订单状态流转
// @Summary      订单状态流转
// @Description  PENDING→PAID/CANCELLED，PAID→SHIPPED/CANCELLED，SHIPPED→COMPLETED
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} apporder.StatusResponse
// @Failure      400 {object} response.ErrorBody "状态值非法"
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody "不允许的状态流转"
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteOrder 删除订单（软删除）
// @Summary      删除订单
// @Description  只有已取消或已完成的订单可以删除
// @Tags         订单
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      204
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody
// @Router       /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteOrderUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
