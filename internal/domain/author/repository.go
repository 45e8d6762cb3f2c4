package author

import (
	"context"
)

// Repository 作者仓储接口
type Repository interface {
	Create(ctx context.Context, author *Author) error

	// FindByID 不存在返回 ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	// List 按ID升序
	List(ctx context.Context) ([]*Author, error)

	Update(ctx context.Context, author *Author) error

	// Delete 物理删除，不存在返回 ErrAuthorNotFound
	Delete(ctx context.Context, id uint) error

	// CountBooks 引用该作者的图书数量
	CountBooks(ctx context.Context, id uint) (int64, error)
}
