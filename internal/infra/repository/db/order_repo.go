package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/lojify/storefront/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = errors.New("order not found")
)

// IOrderRepository 訂單存取介面
type IOrderRepository interface {
	CreateOrderWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetOrdersByStore(ctx context.Context, storeID string) ([]model.Order, error)
	GetOrdersPaginated(ctx context.Context, storeID string, page, pageSize int) ([]model.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateOrderWithItems 主檔與行項目包在同一個交易寫入
// 任一步失敗整張訂單回滾，不會留下沒有行項目的孤兒主檔
func (s *OrderRepo) CreateOrderWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("order %s has no items", order.OrderID)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.OrderID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		return nil
	})
}

// GetOrderByID 連同行項目一起取出
func (s *OrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, "order_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderRepo) GetOrdersByStore(ctx context.Context, storeID string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrdersPaginated 後台訂單列表分頁查詢
func (s *OrderRepo) GetOrdersPaginated(ctx context.Context, storeID string, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	offset := (page - 1) * pageSize

	query := s.db.WithContext(ctx).Model(&model.Order{}).Where("store_id = ?", storeID)
	query.Count(&total)

	err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&orders).Error

	return orders, total, err
}

// UpdateOrderStatus 單欄位更新，狀態轉移的合法性由 service 層把關
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

var _ IOrderRepository = (*OrderRepo)(nil)
