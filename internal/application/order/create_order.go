package order

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/logger"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
	"github.com/xiebiao/bookstore-api/pkg/tracing"
)

const tracerName = "bookstore-api/order"

// CreateOrderUseCase 创建订单用例
// 涉及：目标用户鉴权、事务、悲观锁、库存校验、价格快照
type CreateOrderUseCase struct {
	orderRepo   order.Repository
	bookRepo    book.Repository
	userService user.Service
	txManager   TxManager
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	userService user.Service,
	txManager TxManager,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		bookRepo:    bookRepo,
		userService: userService,
		txManager:   txManager,
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	UserID *uint // 为空时为当前用户，指定他人需要管理员
	Items  []CreateOrderItem
}

// CreateOrderItem 订单明细项
type CreateOrderItem struct {
	BookID   uint
	Quantity int
}

// CreateOrderResponse 下单响应
type CreateOrderResponse struct {
	OrderID     uint      `json:"order_id"`
	TotalAmount string    `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Execute 执行下单
//
// 防止超卖的流程：
//  1. 明细按 book_id 排序合并，所有事务以相同顺序加锁，避免死锁
//  2. SELECT ... FOR UPDATE 锁定图书行后再判断库存
//  3. 单价取锁定时数据库中的价格，不信任客户端
//  4. 写订单和明细，条件扣减库存
//
// 任意一步失败整个事务回滚
func (uc *CreateOrderUseCase) Execute(ctx context.Context, actor user.Principal, req CreateOrderRequest) (resp *CreateOrderResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "order.Create")
	defer span.End()

	start := time.Now()
	metrics.IncGauge(metrics.OrdersInProgress)
	defer func() {
		metrics.DecGauge(metrics.OrdersInProgress)
		metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
		if err != nil {
			metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{"reason": failureReason(err)})
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}
		metrics.IncCounter(metrics.OrdersCreatedTotal)
	}()

	userID, err := uc.userService.ResolveTarget(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("user_id", int64(userID)),
		attribute.Int("item_count", len(req.Items)),
	)

	lines, err := normalizeItems(req.Items)
	if err != nil {
		return nil, err
	}

	var created *order.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		items := make([]order.Item, 0, len(lines))
		for _, line := range lines {
			b, err := uc.bookRepo.LockByID(txCtx, line.BookID)
			if err != nil {
				if errors.Is(err, book.ErrBookNotFound) {
					return book.ErrBookNotFound.WithDetails(map[string]interface{}{"book_id": line.BookID})
				}
				return err
			}
			if b.StockCnt < line.Quantity {
				return book.ErrInsufficientStock.WithDetails(map[string]interface{}{
					"book_id":   b.ID,
					"stock_cnt": b.StockCnt,
					"requested": line.Quantity,
				})
			}
			items = append(items, order.Item{
				BookID:    b.ID,
				Quantity:  line.Quantity,
				UnitPrice: b.Price,
			})
		}

		o, err := order.NewOrder(userID, items)
		if err != nil {
			return err
		}
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}

		for _, line := range lines {
			if err := uc.bookRepo.DecreaseStock(txCtx, line.BookID, line.Quantity); err != nil {
				return err
			}
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("order created", map[string]interface{}{
		"order_id": created.ID,
		"user_id":  created.UserID,
		"total":    created.TotalAmount.StringFixed(2),
	})

	return &CreateOrderResponse{
		OrderID:     created.ID,
		TotalAmount: created.TotalAmount.StringFixed(2),
		Status:      string(created.Status),
		CreatedAt:   created.CreatedAt,
	}, nil
}

// normalizeItems 校验明细，按 book_id 升序合并同一本书的数量
func normalizeItems(items []CreateOrderItem) ([]CreateOrderItem, error) {
	if len(items) == 0 {
		return nil, order.ErrEmptyItems
	}

	merged := make(map[uint]int, len(items))
	for _, it := range items {
		if it.BookID == 0 {
			return nil, order.ErrInvalidBookID
		}
		if it.Quantity < 1 {
			return nil, order.ErrInvalidQuantity
		}
		merged[it.BookID] += it.Quantity
	}

	lines := make([]CreateOrderItem, 0, len(merged))
	for bookID, qty := range merged {
		lines = append(lines, CreateOrderItem{BookID: bookID, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].BookID < lines[j].BookID })
	return lines, nil
}

// failureReason 下单失败原因，用作 orders_failed_total 的 reason 标签
func failureReason(err error) string {
	appErr := apperrors.GetAppError(err)
	switch appErr.Code {
	case apperrors.CodeConflict:
		return "conflict"
	case apperrors.CodeNotFound, apperrors.CodeUserNotFound:
		return "not_found"
	case apperrors.CodeValidation, apperrors.CodeInvalidQueryParam:
		return "validation"
	case apperrors.CodeForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}
