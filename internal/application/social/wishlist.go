package social

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/domain/wishlist"
)

// WishlistUseCase 心愿单用例
type WishlistUseCase struct {
	users     TargetResolver
	wishlists wishlist.Service
	txManager TxManager
}

// NewWishlistUseCase 创建心愿单用例
func NewWishlistUseCase(users TargetResolver, wishlists wishlist.Service, txManager TxManager) *WishlistUseCase {
	return &WishlistUseCase{users: users, wishlists: wishlists, txManager: txManager}
}

// Add 加入心愿单，同一用户同一本书只能有一条有效记录
func (uc *WishlistUseCase) Add(ctx context.Context, actor user.Principal, requested *uint, bookID uint) (*wishlist.Item, error) {
	userID, err := uc.users.ResolveTarget(ctx, actor, requested)
	if err != nil {
		return nil, err
	}

	var item *wishlist.Item
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		item, err = uc.wishlists.Add(txCtx, userID, bookID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}
