package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
// 数据库中直接存字符串，接口层原样返回
type Status string

const (
	StatusPending   Status = "PENDING"   // 待支付
	StatusPaid      Status = "PAID"      // 已支付
	StatusShipped   Status = "SHIPPED"   // 已发货
	StatusCompleted Status = "COMPLETED" // 已完成
	StatusCancelled Status = "CANCELLED" // 已取消
)

// AllStatuses 允许的状态值，校验失败时放进 details
var AllStatuses = []Status{StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled}

// ParseStatus 校验状态字符串（区分大小写）
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidStatus.WithDetails(map[string]interface{}{"allowed": AllStatuses})
}

// transitions 合法的状态流转
// 发货后不能再取消；PAID→PAID 允许但不产生变化
var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusPaid, StatusShipped, StatusCancelled},
	StatusShipped:   {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsTerminal 是否终态
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Order 订单实体(聚合根)
// 1. TotalAmount 创建时计算，之后任何状态变更都不再写
// 2. PaidAt 第一次进入 PAID 时设置，之后不再覆盖
type Order struct {
	ID          uint
	UserID      uint
	Status      Status
	TotalAmount decimal.Decimal
	PaidAt      *time.Time
	Items       []Item
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Item 订单明细，不是独立聚合根，必须通过 Order 访问
// UnitPrice 是下单时的价格快照，不随图书改价变化
type Item struct {
	ID        uint
	OrderID   uint
	BookID    uint
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// Subtotal 单价 × 数量
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder 创建待支付订单，总金额由明细计算
func NewOrder(userID uint, items []Item) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	now := time.Now()
	o := &Order{
		UserID:    userID,
		Status:    StatusPending,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o.TotalAmount = o.CalculateTotal()
	return o, nil
}

// CalculateTotal 明细小计之和
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// CanTransitionTo 检查是否可以转换到目标状态
func (o *Order) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换，返回转换前的状态
func (o *Order) TransitionTo(target Status, now time.Time) (Status, error) {
	from := o.Status
	if from == StatusCancelled {
		return from, ErrOrderCancelled
	}
	if !o.CanTransitionTo(target) {
		return from, ErrInvalidStatusTransition.WithDetails(map[string]interface{}{
			"from": from,
			"to":   target,
		})
	}
	if target == StatusPaid && o.PaidAt == nil {
		paidAt := now
		o.PaidAt = &paidAt
	}
	if from != target {
		o.Status = target
		o.UpdatedAt = now
	}
	return from, nil
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// IsDeleted 是否已软删除
func (o *Order) IsDeleted() bool {
	return o.DeletedAt != nil
}
