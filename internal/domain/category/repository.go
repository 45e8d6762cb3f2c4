package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// Create name 或 slug 重复返回 ErrCategoryDuplicate
	Create(ctx context.Context, category *Category) error

	// FindByID 不存在返回 ErrCategoryNotFound
	FindByID(ctx context.Context, id uint) (*Category, error)

	// FindByIDs 返回存在的分类，调用方自行比对缺失的ID
	FindByIDs(ctx context.Context, ids []uint) ([]*Category, error)

	// List 按ID升序
	List(ctx context.Context) ([]*Category, error)

	Update(ctx context.Context, category *Category) error

	// Delete 物理删除分类，同时删除 book_categories 中的关联行
	Delete(ctx context.Context, id uint) error
}
