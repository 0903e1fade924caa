package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lojify/storefront/internal/domain/model"
	"github.com/lojify/storefront/internal/infra/producer"
	"github.com/lojify/storefront/internal/infra/repository/db"
	"github.com/lojify/storefront/internal/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrOrderTerminal = errors.New("order is in a terminal status")
)

// IOrderService 商家端訂單查詢與狀態流轉介面
type IOrderService interface {
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByStore(ctx context.Context, storeID string) ([]model.Order, error)
	GetOrdersPaginated(ctx context.Context, storeID string, page, pageSize int) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID string, to model.OrderStatus) error
	Advance(ctx context.Context, orderID string) (model.OrderStatus, error)
	Cancel(ctx context.Context, orderID string) error
}

type OrderService struct {
	orderRepo db.IOrderRepository
	producer  producer.IOrderEventProducer
	logger    *zap.Logger
}

func NewOrderService(orderRepo db.IOrderRepository, eventProducer producer.IOrderEventProducer, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{orderRepo: orderRepo, producer: eventProducer, logger: logger}
}

func (o *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return o.orderRepo.GetOrderByID(ctx, orderID)
}

func (o *OrderService) GetOrdersByStore(ctx context.Context, storeID string) ([]model.Order, error) {
	return o.orderRepo.GetOrdersByStore(ctx, storeID)
}

func (o *OrderService) GetOrdersPaginated(ctx context.Context, storeID string, page, pageSize int) ([]model.Order, int64, error) {
	return o.orderRepo.GetOrdersPaginated(ctx, storeID, page, pageSize)
}

// UpdateStatus 商家觸發的狀態更新
// 狀態機: pending -> paid -> shipped -> delivered，pending 可取消，不可跳關或回退
// 純欄位更新，不連動庫存或通知
func (o *OrderService) UpdateStatus(ctx context.Context, orderID string, to model.OrderStatus) error {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	from := order.Status
	if from.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderTerminal, from)
	}
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidStatusTransition, from, to)
	}

	if err := o.orderRepo.UpdateOrderStatus(ctx, orderID, to); err != nil {
		return err
	}

	if !util.IsNil(o.producer) {
		if err := o.producer.ProduceOrderStatusChangedEvent(ctx, order, from, to); err != nil {
			o.logger.Warn("failed to produce status changed event",
				zap.String("order_id", orderID), zap.Error(err))
		}
	}
	return nil
}

// Advance 推進到工作流程的下一個狀態
func (o *OrderService) Advance(ctx context.Context, orderID string) (model.OrderStatus, error) {
	order, err := o.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	next := order.Status.Next()
	if next == "" {
		return "", fmt.Errorf("%w: %s", ErrOrderTerminal, order.Status)
	}
	if err := o.UpdateStatus(ctx, orderID, next); err != nil {
		return "", err
	}
	return next, nil
}

// Cancel 只有 pending 訂單可取消
func (o *OrderService) Cancel(ctx context.Context, orderID string) error {
	return o.UpdateStatus(ctx, orderID, model.OrderStatusCancelled)
}

var _ IOrderService = (*OrderService)(nil)
