package event

import (
	"github.com/lojify/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
)

// OrderCreatedEvent 訂單建立後發佈到訂單主題，供報表與通知消費
// 金額欄位為建單當下的快照
type OrderCreatedEvent struct {
	BaseEvent
	OrderID        string            `json:"order_id"`
	CustomerEmail  string            `json:"customer_email"`
	Items          []model.OrderItem `json:"items"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	ShippingAmount decimal.Decimal   `json:"shipping_amount"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	CouponCode     string            `json:"coupon_code,omitempty"`
	PaymentMethod  string            `json:"payment_method"`
}

func (e *OrderCreatedEvent) Type() EventType {
	return OrderCreatedEventName
}

// OrderStatusChangedEvent 商家更新訂單狀態時發佈
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID    string            `json:"order_id"`
	FromStatus model.OrderStatus `json:"from_status"`
	ToStatus   model.OrderStatus `json:"to_status"`
}

func (e *OrderStatusChangedEvent) Type() EventType {
	return OrderStatusChangedEventName
}
