package cart

import (
	"context"
)

// Repository 购物车仓储接口，所有查询排除软删除行
type Repository interface {
	Create(ctx context.Context, item *Item) error

	// FindByID 不存在或已删除返回 ErrItemNotFound
	FindByID(ctx context.Context, id uint) (*Item, error)

	// FindActive 查找 (user, book) 的有效行，没有时返回 ErrItemNotFound
	FindActive(ctx context.Context, userID, bookID uint) (*Item, error)

	// ListByUser 按创建时间倒序
	ListByUser(ctx context.Context, userID uint) ([]*Item, error)

	// Update 更新数量与价格快照
	Update(ctx context.Context, item *Item) error

	SoftDelete(ctx context.Context, id uint) error
}
