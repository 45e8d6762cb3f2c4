package order

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/pkg/logger"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
)

// UpdateStatusUseCase 订单状态流转（管理员）
// 角色校验在路由层完成
type UpdateStatusUseCase struct {
	orderRepo order.Repository
	txManager TxManager
}

// NewUpdateStatusUseCase 创建状态流转用例
func NewUpdateStatusUseCase(orderRepo order.Repository, txManager TxManager) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderRepo: orderRepo, txManager: txManager}
}

// StatusResponse 状态流转结果
type StatusResponse struct {
	ID        uint       `json:"id"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Execute 执行状态流转，status 为原始字符串，非法值返回 ErrInvalidStatus
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, id uint, status string) (*StatusResponse, error) {
	target, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		updated *order.Order
		from    order.Status
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.LockByID(txCtx, id)
		if err != nil {
			return err
		}
		from, err = o.TransitionTo(target, time.Now())
		if err != nil {
			return err
		}
		updated = o
		// PAID -> PAID 不写库
		if from == target {
			return nil
		}
		return uc.orderRepo.UpdateStatus(txCtx, o, from)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncCounterVec(metrics.OrderStatusTransitionsTotal, map[string]string{
		"from": string(from),
		"to":   string(target),
	})
	logger.FromContext(ctx).Info("order status changed", map[string]interface{}{
		"order_id": id,
		"from":     from,
		"to":       target,
	})

	return &StatusResponse{
		ID:        updated.ID,
		Status:    string(updated.Status),
		PaidAt:    updated.PaidAt,
		UpdatedAt: updated.UpdatedAt,
	}, nil
}
