package order

import (
	"context"

	"github.com/xiebiao/bookstore-api/pkg/pagination"
)

// Repository 订单仓储接口(依赖倒置原则)
// 事务通过 context 传递，由 TxManager 开启
type Repository interface {
	// Create 创建订单及明细，回填 ID
	Create(ctx context.Context, order *Order) error

	// FindByID 包含按ID排序的明细；不存在或已软删除返回 ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// LockByID 同 FindByID，订单行加排他锁，只能在事务中调用
	LockByID(ctx context.Context, id uint) (*Order, error)

	// UpdateStatus 只写 status、paid_at、updated_at，不触碰 total_amount
	// 当前状态不再是 from 时返回 ErrInvalidStatusTransition
	UpdateStatus(ctx context.Context, order *Order, from Status) error

	// SoftDelete 软删除订单
	SoftDelete(ctx context.Context, id uint) error

	// List 不带明细的分页列表
	List(ctx context.Context, filter ListFilter, page pagination.Request) ([]*Order, int64, error)
}

// ListFilter 订单列表过滤条件
type ListFilter struct {
	UserID *uint
	Status *Status
}

// ListOptions 订单列表的分页配置
var ListOptions = pagination.Options{
	DefaultSort: "created_at",
	DefaultDir:  pagination.DESC,
	Sortable:    []string{"id", "created_at", "updated_at", "total_amount", "status", "paid_at"},
}
