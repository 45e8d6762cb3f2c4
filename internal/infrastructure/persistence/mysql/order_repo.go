package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-api/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/pagination"
)

// orderRepository 订单仓储实现
// 订单和明细必须在同一事务中创建，调用方通过 TxManager 开启事务
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	db := conn(ctx, r.db)

	model := &OrderModel{
		UserID:      o.UserID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		PaidAt:      o.PaidAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "create order")
	}
	o.ID = model.ID

	items := make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemModel{
			OrderID:   model.ID,
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			CreatedAt: o.CreatedAt,
		}
	}
	if err := db.Create(&items).Error; err != nil {
		return apperrors.Wrap(err, "create order items")
	}
	for i := range o.Items {
		o.Items[i].ID = items[i].ID
		o.Items[i].OrderID = model.ID
		o.Items[i].CreatedAt = items[i].CreatedAt
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return r.find(ctx, id, false)
}

// LockByID 订单行加 FOR UPDATE，必须在事务中调用
func (r *orderRepository) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	return r.find(ctx, id, true)
}

func (r *orderRepository) find(ctx context.Context, id uint, lock bool) (*order.Order, error) {
	db := conn(ctx, r.db)

	q := db.Scopes(notDeleted("orders"))
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var model OrderModel
	if err := q.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "find order")
	}

	var items []OrderItemModel
	if err := db.Where("order_id = ?", id).Order("id ASC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(err, "find order items")
	}

	o := toOrderEntity(&model)
	o.Items = make([]order.Item, len(items))
	for i, it := range items {
		o.Items[i] = order.Item{
			ID:        it.ID,
			OrderID:   it.OrderID,
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			CreatedAt: it.CreatedAt,
		}
	}
	return o, nil
}

// UpdateStatus total_amount 不在更新列中
// WHERE status = from，状态已被并发修改时影响0行
func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order, from order.Status) error {
	result := conn(ctx, r.db).Model(&OrderModel{}).
		Scopes(notDeleted("orders")).
		Where("id = ? AND status = ?", o.ID, string(from)).
		Updates(map[string]interface{}{
			"status":     string(o.Status),
			"paid_at":    o.PaidAt,
			"updated_at": o.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "update order status")
	}
	if result.RowsAffected == 0 {
		return order.ErrInvalidStatusTransition.WithDetails(map[string]interface{}{
			"from": from,
			"to":   o.Status,
		})
	}
	return nil
}

func (r *orderRepository) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now()
	result := conn(ctx, r.db).Model(&OrderModel{}).
		Scopes(notDeleted("orders")).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": now, "updated_at": now})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete order")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) List(ctx context.Context, filter order.ListFilter, page pagination.Request) ([]*order.Order, int64, error) {
	query := conn(ctx, r.db).Model(&OrderModel{}).Scopes(notDeleted("orders"))
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "count orders")
	}

	var models []OrderModel
	if err := query.Scopes(paginate(page)).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "list orders")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

func toOrderEntity(m *OrderModel) *order.Order {
	return &order.Order{
		ID:          m.ID,
		UserID:      m.UserID,
		Status:      order.Status(m.Status),
		TotalAmount: m.TotalAmount,
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   m.DeletedAt,
	}
}
