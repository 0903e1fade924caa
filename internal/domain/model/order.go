package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // 待付款
	OrderStatusPaid      OrderStatus = "paid"      // 已付款
	OrderStatusShipped   OrderStatus = "shipped"   // 已出貨
	OrderStatusDelivered OrderStatus = "delivered" // 已送達
	OrderStatusCancelled OrderStatus = "cancelled" // 已取消
)

var ErrInvalidStatusTransition = errors.New("invalid order status transition")

// 狀態機: pending -> paid -> shipped -> delivered，pending 可取消
// delivered / cancelled 為終態
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped},
	OrderStatusShipped: {OrderStatusDelivered},
}

// CanTransition 檢查狀態轉移是否合法，不允許跳關或回退
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range statusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Next 商家工作流程中的下一個狀態，終態回傳空字串
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case OrderStatusPending:
		return OrderStatusPaid
	case OrderStatusPaid:
		return OrderStatusShipped
	case OrderStatusShipped:
		return OrderStatusDelivered
	}
	return ""
}

// IsTerminal 終態不再轉移
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order 訂單主檔，建立後除 Status 外不可變動
type Order struct {
	OrderID        string          `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	StoreID        string          `gorm:"not null;type:varchar(255);index" json:"store_id"`
	CustomerName   string          `gorm:"not null;type:varchar(100)" json:"customer_name"`
	CustomerEmail  string          `gorm:"not null;type:varchar(255)" json:"customer_email"`
	CustomerPhone  string          `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	AddressLine1   string          `gorm:"not null;type:varchar(255)" json:"address_line1"`
	AddressLine2   string          `gorm:"type:varchar(255)" json:"address_line2,omitempty"`
	City           string          `gorm:"not null;type:varchar(100)" json:"city"`
	State          string          `gorm:"not null;type:varchar(50)" json:"state"`
	ZipCode        string          `gorm:"not null;type:varchar(20)" json:"zip_code"`
	Status         OrderStatus     `gorm:"not null;type:varchar(20);default:'pending'" json:"status"`
	TotalAmount    decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total_amount"`
	DiscountAmount decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0" json:"discount_amount"`
	ShippingAmount decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0" json:"shipping_amount"`
	CouponCode     string          `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	PaymentMethod  string          `gorm:"not null;type:varchar(50)" json:"payment_method"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"` // 一對多，級聯刪除
	BaseModel
}

// OrderItem 訂單行項目
// 商品名稱 / 單價 / 規格在建單當下快照，之後目錄異動不影響歷史訂單
type OrderItem struct {
	OrderID         string            `gorm:"primaryKey;type:varchar(255)" json:"order_id"`
	LineKey         string            `gorm:"primaryKey;type:varchar(512)" json:"line_key"` // 同單內的行識別鍵（商品+規格）
	ProductID       string            `gorm:"not null;type:varchar(255)" json:"product_id"`
	ProductName     string            `gorm:"not null;type:varchar(100)" json:"product_name"`
	UnitPrice       decimal.Decimal   `gorm:"not null;type:decimal(10,2)" json:"unit_price"`
	Quantity        int               `gorm:"not null" json:"quantity"`
	TotalPrice      decimal.Decimal   `gorm:"not null;type:decimal(10,2)" json:"total_price"`
	SelectedOptions map[string]string `gorm:"serializer:json;type:jsonb" json:"selected_options,omitempty"`
	BaseModel
}
