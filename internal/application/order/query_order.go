package order

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/pagination"
)

// QueryOrderUseCase 订单查询：列表和详情
type QueryOrderUseCase struct {
	orderRepo order.Repository
}

// NewQueryOrderUseCase 创建订单查询用例
func NewQueryOrderUseCase(orderRepo order.Repository) *QueryOrderUseCase {
	return &QueryOrderUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 列表查询请求
// UserID 只对管理员生效，未传时与普通用户一样只看自己的订单
type ListOrdersRequest struct {
	UserID *uint
	Status *order.Status
	Page   string
	Size   string
	Sort   string
}

// OrderSummary 列表项，不含明细
type OrderSummary struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	Status      string     `json:"status"`
	TotalAmount string     `json:"total_amount"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OrderItemDetail 订单明细
type OrderItemDetail struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// OrderDetail 订单详情
type OrderDetail struct {
	OrderSummary
	UpdatedAt time.Time         `json:"updated_at"`
	Items     []OrderItemDetail `json:"items"`
}

// List 分页查询订单
func (uc *QueryOrderUseCase) List(ctx context.Context, actor user.Principal, req ListOrdersRequest) (pagination.Page[OrderSummary], error) {
	// 默认只看自己的订单，管理员显式传 user_id 才能看他人的
	target := actor.UserID
	if actor.IsAdmin() && req.UserID != nil {
		target = *req.UserID
	}
	filter := order.ListFilter{UserID: &target, Status: req.Status}

	page := pagination.Parse(req.Page, req.Size, req.Sort, order.ListOptions)
	orders, total, err := uc.orderRepo.List(ctx, filter, page)
	if err != nil {
		return pagination.Page[OrderSummary]{}, err
	}

	content := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		content = append(content, toSummary(o))
	}
	return pagination.NewPage(content, total, page), nil
}

// Get 订单详情，本人或管理员可查看
func (uc *QueryOrderUseCase) Get(ctx context.Context, actor user.Principal, id uint) (*OrderDetail, error) {
	o, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(o.UserID) {
		return nil, apperrors.ErrForbidden
	}
	return toDetail(o), nil
}

func toSummary(o *order.Order) OrderSummary {
	return OrderSummary{
		ID:          o.ID,
		UserID:      o.UserID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount.StringFixed(2),
		PaidAt:      o.PaidAt,
		CreatedAt:   o.CreatedAt,
	}
}

func toDetail(o *order.Order) *OrderDetail {
	items := make([]OrderItemDetail, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemDetail{
			ID:        it.ID,
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Subtotal:  it.Subtotal().StringFixed(2),
		})
	}
	return &OrderDetail{
		OrderSummary: toSummary(o),
		UpdatedAt:    o.UpdatedAt,
		Items:        items,
	}
}
