package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lojify/storefront/internal/domain/model"
	evt_model "github.com/lojify/storefront/internal/domain/model/event"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// IOrderEventProducer 訂單事件發佈介面
type IOrderEventProducer interface {
	ProduceOrderCreatedEvent(ctx context.Context, order *model.Order, subtotal decimal.Decimal) error
	ProduceOrderStatusChangedEvent(ctx context.Context, order *model.Order, from, to model.OrderStatus) error
	Close() error
}

// 以 storeID 當 message key，同店事件落在同一分區保序
type OrderEventProducer struct {
	writer *kafka.Writer
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  3,
		Compression:  kafka.Snappy,
	}
	return &OrderEventProducer{writer: writer}
}

func (p *OrderEventProducer) ProduceOrderCreatedEvent(ctx context.Context, order *model.Order, subtotal decimal.Decimal) error {
	event := &evt_model.OrderCreatedEvent{
		BaseEvent: evt_model.BaseEvent{
			EventID:     uuid.NewString(),
			AggregateID: order.OrderID,
			StoreID:     order.StoreID,
			CreatedAt:   time.Now().UTC(),
			EventType:   evt_model.OrderCreatedEventName,
		},
		OrderID:        order.OrderID,
		CustomerEmail:  order.CustomerEmail,
		Items:          order.Items,
		Subtotal:       subtotal,
		DiscountAmount: order.DiscountAmount,
		ShippingAmount: order.ShippingAmount,
		TotalAmount:    order.TotalAmount,
		CouponCode:     order.CouponCode,
		PaymentMethod:  order.PaymentMethod,
	}
	return p.produce(ctx, order.StoreID, event)
}

func (p *OrderEventProducer) ProduceOrderStatusChangedEvent(ctx context.Context, order *model.Order, from, to model.OrderStatus) error {
	event := &evt_model.OrderStatusChangedEvent{
		BaseEvent: evt_model.BaseEvent{
			EventID:     uuid.NewString(),
			AggregateID: order.OrderID,
			StoreID:     order.StoreID,
			CreatedAt:   time.Now().UTC(),
			EventType:   evt_model.OrderStatusChangedEventName,
		},
		OrderID:    order.OrderID,
		FromStatus: from,
		ToStatus:   to,
	}
	return p.produce(ctx, order.StoreID, event)
}

func (p *OrderEventProducer) produce(ctx context.Context, key string, event evt_model.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.GetID(), err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type())},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to produce event %s: %w", event.GetID(), err)
	}
	return nil
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)
