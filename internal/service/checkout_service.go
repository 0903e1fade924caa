package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/lojify/storefront/internal/domain/model"
	"github.com/lojify/storefront/internal/infra/producer"
	"github.com/lojify/storefront/internal/infra/repository/db"
	"github.com/lojify/storefront/internal/pkg/util"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingCustomerField = errors.New("missing required customer field")
	ErrInvalidEmail         = errors.New("invalid customer email")
)

// CustomerInfo 結帳表單，電話為選填
type CustomerInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2,omitempty"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	PaymentMethod string `json:"payment_method"`
}

// Validate 同步驗證，任何網路呼叫之前先擋掉缺漏欄位
// 依表單欄位順序檢查，回報的永遠是第一個缺漏欄位
func (c *CustomerInfo) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"address_line1", c.AddressLine1},
		{"city", c.City},
		{"state", c.State},
		{"zip_code", c.ZipCode},
		{"payment_method", c.PaymentMethod},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingCustomerField, r.field)
		}
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// CheckoutService 結帳流程的無狀態依賴集合，單一階段的狀態放在 Checkout
type CheckoutService struct {
	storeRepo   db.IStoreRepository
	productRepo db.IProductRepository
	orderRepo   db.IOrderRepository
	coupons     ICouponService
	producer    producer.IOrderEventProducer
	logger      *zap.Logger
}

func NewCheckoutService(
	storeRepo db.IStoreRepository,
	productRepo db.IProductRepository,
	orderRepo db.IOrderRepository,
	coupons ICouponService,
	eventProducer producer.IOrderEventProducer,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		storeRepo:   storeRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		coupons:     coupons,
		producer:    eventProducer,
		logger:      logger,
	}
}

// Begin 建立一次結帳，空購物車直接拒絕，不會產生零元訂單
func (s *CheckoutService) Begin(ctx context.Context, cart *CartService) (*Checkout, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	shipping, err := s.storeRepo.GetShippingConfig(ctx, cart.StoreID())
	if err != nil {
		return nil, fmt.Errorf("failed to load shipping config: %w", err)
	}
	return &Checkout{
		svc:      s,
		cart:     cart,
		shipping: *shipping,
	}, nil
}

// Checkout 單一結帳階段的狀態：購物車 + 運費設定 + 當前套用的折扣碼
type Checkout struct {
	svc      *CheckoutService
	cart     *CartService
	shipping model.ShippingConfig
	applied  *model.AppliedCoupon
}

// ApplyCoupon 套用折扣碼，新的取代舊的，一次只有一個
// 驗證失敗時清掉原本套用的折扣碼，與前台行為一致
func (c *Checkout) ApplyCoupon(ctx context.Context, code string) (model.Breakdown, error) {
	applied, err := c.svc.coupons.ValidateCoupon(ctx, c.cart.StoreID(), code, c.cart.Total())
	if err != nil {
		c.applied = nil
		return c.Breakdown(), err
	}
	c.applied = applied
	return c.Breakdown(), nil
}

// RemoveCoupon 移除目前套用的折扣碼
func (c *Checkout) RemoveCoupon() {
	c.applied = nil
}

// Breakdown 以目前購物車內容計算金額拆解
func (c *Checkout) Breakdown() model.Breakdown {
	return ComputeBreakdown(c.cart.Items(), c.shipping, c.applied)
}

// Submit 送出訂單
// 主檔與行項目在同一個交易寫入，失敗時購物車保持原狀可直接重試
// 成功後清空購物車並發佈 OrderCreated 事件（發佈失敗只記錄，不影響訂單）
func (c *Checkout) Submit(ctx context.Context, info CustomerInfo) (string, error) {
	if c.cart.IsEmpty() {
		return "", ErrEmptyCart
	}
	if err := info.Validate(); err != nil {
		return "", err
	}

	// 以目前目錄價格快照行項目，購物車裡的顯示價格可能已過期
	cartItems := c.cart.Items()
	orderItems := make([]model.OrderItem, 0, len(cartItems))
	subtotal := decimal.Zero
	for _, item := range cartItems {
		product, err := c.svc.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return "", fmt.Errorf("failed to snapshot product %s: %w", item.ProductID, err)
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItems = append(orderItems, model.OrderItem{
			LineKey:         item.Key(),
			ProductID:       product.ProductID,
			ProductName:     product.Name,
			UnitPrice:       product.Price,
			Quantity:        item.Quantity,
			TotalPrice:      lineTotal,
			SelectedOptions: item.SelectedOptions,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	// 送出前以最新價格重新驗證折扣碼
	if c.applied != nil {
		applied, err := c.svc.coupons.ValidateCoupon(ctx, c.cart.StoreID(), c.applied.Code, subtotal)
		if err != nil {
			c.applied = nil
			return "", err
		}
		c.applied = applied
	}

	breakdown := ComputeBreakdown(snapshotCartItems(orderItems), c.shipping, c.applied)

	order := &model.Order{
		OrderID:        uuid.NewString(),
		StoreID:        c.cart.StoreID(),
		CustomerName:   info.Name,
		CustomerEmail:  info.Email,
		CustomerPhone:  info.Phone,
		AddressLine1:   info.AddressLine1,
		AddressLine2:   info.AddressLine2,
		City:           info.City,
		State:          info.State,
		ZipCode:        info.ZipCode,
		Status:         model.OrderStatusPending,
		TotalAmount:    breakdown.Total,
		DiscountAmount: breakdown.Discount,
		ShippingAmount: breakdown.Shipping,
		CouponCode:     breakdown.CouponCode,
		PaymentMethod:  info.PaymentMethod,
	}

	if err := c.svc.orderRepo.CreateOrderWithItems(ctx, order, orderItems); err != nil {
		// 購物車不動，讓顧客重試時不用重新加入商品
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	order.Items = orderItems

	if err := c.cart.Clear(ctx); err != nil {
		// 訂單已成立，清空失敗只記錄
		c.svc.logger.Warn("order created but cart clear failed",
			zap.String("order_id", order.OrderID), zap.Error(err))
	}

	if !util.IsNil(c.svc.producer) {
		if err := c.svc.producer.ProduceOrderCreatedEvent(ctx, order, breakdown.Subtotal); err != nil {
			c.svc.logger.Warn("failed to produce order created event",
				zap.String("order_id", order.OrderID), zap.Error(err))
		}
	}

	return order.OrderID, nil
}

// snapshotCartItems 把已快照的訂單行轉回計價輸入，確保計價用的是快照價格
func snapshotCartItems(items []model.OrderItem) []model.CartItem {
	cartItems := make([]model.CartItem, len(items))
	for i, item := range items {
		cartItems[i] = model.CartItem{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			SelectedOptions: item.SelectedOptions,
		}
	}
	return cartItems
}
