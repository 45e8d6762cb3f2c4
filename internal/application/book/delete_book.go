package book

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
)

// DeleteBookUseCase 删除图书（管理员）
// 被订单明细或有效书评引用时拒绝删除；否则在一个事务里删除
// 分类关联、购物车行、心愿单行和图书本身
type DeleteBookUseCase struct {
	bookRepo  book.Repository
	txManager TxManager
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookRepo book.Repository, txManager TxManager) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookRepo: bookRepo, txManager: txManager}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定图书行，防止删除过程中有新订单引用它
		if _, err := uc.bookRepo.LockByID(txCtx, id); err != nil {
			return err
		}

		items, reviews, err := uc.bookRepo.CountReferences(txCtx, id)
		if err != nil {
			return err
		}
		if items > 0 || reviews > 0 {
			return book.ErrBookInUse.WithDetails(map[string]interface{}{
				"book_id":        id,
				"order_items":    items,
				"active_reviews": reviews,
			})
		}

		return uc.bookRepo.Delete(txCtx, id)
	})
}
