package order

import "context"

// TxManager 事务边界，由 persistence/mysql.TxManager 实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
