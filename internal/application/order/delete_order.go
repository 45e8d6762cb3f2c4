package order

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/order"
)

// DeleteOrderUseCase 软删除订单（管理员），只允许已取消或已完成的订单
type DeleteOrderUseCase struct {
	orderRepo order.Repository
	txManager TxManager
}

// NewDeleteOrderUseCase 创建删除用例
func NewDeleteOrderUseCase(orderRepo order.Repository, txManager TxManager) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{orderRepo: orderRepo, txManager: txManager}
}

// Execute 执行删除
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, id uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.LockByID(txCtx, id)
		if err != nil {
			return err
		}
		if !o.Status.IsTerminal() {
			return order.ErrOrderNotFinished.WithDetails(map[string]interface{}{"status": o.Status})
		}
		return uc.orderRepo.SoftDelete(txCtx, id)
	})
}
