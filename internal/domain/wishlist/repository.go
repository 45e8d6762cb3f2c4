package wishlist

import (
	"context"
)

// Repository 心愿单仓储接口，所有查询排除软删除行
type Repository interface {
	Create(ctx context.Context, item *Item) error

	FindByID(ctx context.Context, id uint) (*Item, error)

	// ExistsActive (user, book) 是否已有有效行
	ExistsActive(ctx context.Context, userID, bookID uint) (bool, error)

	// List userID 为 nil 时返回全部，按创建时间倒序
	List(ctx context.Context, userID *uint) ([]*Item, error)

	SoftDelete(ctx context.Context, id uint) error
}
