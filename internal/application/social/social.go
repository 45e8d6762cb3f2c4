// Package social 购物车、心愿单、书评的用例编排
//
// 请求体里的 user_id 可以省略，省略时为当前用户；指定他人需要管理员，
// 并且目标用户必须存在。查重和写入放在同一个事务里。
package social

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
)

// TxManager 事务边界，由 persistence/mysql.TxManager 实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TargetResolver 确定操作的目标用户，由 user.Service 实现
type TargetResolver interface {
	ResolveTarget(ctx context.Context, actor user.Principal, requested *uint) (uint, error)
}
