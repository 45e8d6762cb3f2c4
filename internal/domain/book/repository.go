package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-api/pkg/pagination"
)

// Repository 图书仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建图书并写入 book_categories，ISBN 重复返回 ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 带出作者和分类摘要，不存在返回 ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书字段并整体替换分类关联
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书及其分类关联、购物车行、心愿单行（需在事务中调用）
	Delete(ctx context.Context, id uint) error

	// List 过滤 + 分页 + 排序
	List(ctx context.Context, filter ListFilter, page pagination.Request) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(SELECT ... FOR UPDATE)，只能在事务中使用
	LockByID(ctx context.Context, id uint) (*Book, error)

	// DecreaseStock 条件扣减库存：UPDATE ... WHERE stock_cnt >= quantity
	// 影响行数为0时返回 ErrInsufficientStock（图书不存在返回 ErrBookNotFound）
	DecreaseStock(ctx context.Context, id uint, quantity int) error

	// CountReferences 引用该图书的订单明细数和有效评价数
	CountReferences(ctx context.Context, id uint) (orderItems int64, activeReviews int64, err error)
}

// ListFilter 图书列表过滤条件，零值字段不参与过滤
type ListFilter struct {
	Keyword    string // 标题或简介模糊匹配（不区分大小写）
	Status     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	CategoryID *uint
	AuthorID   *uint
}

// ListOptions 图书列表的分页配置
var ListOptions = pagination.Options{
	DefaultSort: "created_at",
	DefaultDir:  pagination.DESC,
	Sortable:    []string{"id", "title", "price", "stock_cnt", "published_date", "created_at", "updated_at"},
}
