package dto

// CreateOrderRequest HTTP下单请求
// user_id 省略时为当前用户；明细的合法性在应用层统一校验，返回稳定的错误信息
type CreateOrderRequest struct {
	UserID *uint                    `json:"user_id" example:"1"`
	Items  []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest 订单明细项
type CreateOrderItemRequest struct {
	BookID   uint `json:"book_id" example:"1"`
	Quantity int  `json:"quantity" example:"2"`
}

// UpdateOrderStatusRequest 订单状态流转
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"PAID"`
}
