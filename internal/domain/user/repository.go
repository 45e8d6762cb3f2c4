package user

import (
	"context"
)

// Repository 用户仓储接口
// 接口定义在domain层，实现在infrastructure/persistence/mysql
// 所有查询都排除已注销用户
type Repository interface {
	// Create 创建用户，邮箱重复返回 ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在或已注销返回 ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 不存在或已注销返回 ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List 全部有效用户，按ID升序
	List(ctx context.Context) ([]*User, error)

	// Update 更新名称与资料
	Update(ctx context.Context, user *User) error

	// SoftDelete 注销用户
	SoftDelete(ctx context.Context, id uint) error
}
