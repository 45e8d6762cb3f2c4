package social

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/cart"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
)

// CartUseCase 购物车用例
type CartUseCase struct {
	users     TargetResolver
	carts     cart.Service
	txManager TxManager
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(users TargetResolver, carts cart.Service, txManager TxManager) *CartUseCase {
	return &CartUseCase{users: users, carts: carts, txManager: txManager}
}

// AddToCartRequest 加入购物车请求
type AddToCartRequest struct {
	UserID   *uint
	BookID   uint
	Quantity int
}

// Add 加入购物车，merged 表示合并进了已有的行
func (uc *CartUseCase) Add(ctx context.Context, actor user.Principal, req AddToCartRequest) (*cart.Item, bool, error) {
	userID, err := uc.users.ResolveTarget(ctx, actor, req.UserID)
	if err != nil {
		return nil, false, err
	}

	var (
		item   *cart.Item
		merged bool
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		item, merged, err = uc.carts.Add(txCtx, userID, req.BookID, req.Quantity)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return item, merged, nil
}

// List 有效的购物车行，管理员可以查看他人
func (uc *CartUseCase) List(ctx context.Context, actor user.Principal, requested *uint) ([]*cart.Item, error) {
	userID, err := uc.users.ResolveTarget(ctx, actor, requested)
	if err != nil {
		return nil, err
	}
	return uc.carts.List(ctx, userID)
}
