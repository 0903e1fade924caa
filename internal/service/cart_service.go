package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lojify/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidOption   = errors.New("option is not declared by the product")
	ErrOutOfStock      = errors.New("product is out of stock")
)

// ICartStorage 購物車持久化介面
// Redis 實作見 internal/infra/repository/redis_repo，測試用記憶體實作見測試檔
type ICartStorage interface {
	LoadCart(ctx context.Context, sessionID, storeID string) ([]model.CartItem, error)
	SaveCart(ctx context.Context, sessionID, storeID string, items []model.CartItem) error
	DeleteCart(ctx context.Context, sessionID, storeID string) error
}

// CartService 單一購物階段的購物車狀態
// 單一邏輯執行緒存取，不需要鎖；跨階段只靠儲存層 last-write-wins
// 初始化時載入一次，之後每次異動整份回寫
type CartService struct {
	sessionID string
	storeID   string
	cart      model.Cart
	storage   ICartStorage
	onOpen    func() // 加入商品後開啟購物車顯示的 UI 訊號，可為 nil
	logger    *zap.Logger
}

// NewCartService 載入失敗或資料毀損一律退化成空購物車，不中斷流程
func NewCartService(ctx context.Context, storage ICartStorage, sessionID, storeID string, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}

	items, err := storage.LoadCart(ctx, sessionID, storeID)
	if err != nil {
		logger.Warn("failed to load cart, starting empty",
			zap.String("session_id", sessionID), zap.Error(err))
		items = nil
	}

	return &CartService{
		sessionID: sessionID,
		storeID:   storeID,
		cart: model.Cart{
			SessionID: sessionID,
			StoreID:   storeID,
			Items:     items,
		},
		storage: storage,
		logger:  logger,
	}
}

// SetOnOpen 註冊加入商品後的 UI 回呼
func (s *CartService) SetOnOpen(fn func()) {
	s.onOpen = fn
}

// Add 加入商品
// 規格必須是商品宣告過的 name/value，未宣告的組合在這裡擋下，避免污染行識別
// 相同 (商品, 規格) 的行項目只合併數量，不新增行；新組合附加在尾端保留插入順序
func (s *CartService) Add(ctx context.Context, product *model.Product, quantity int, options map[string]string) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if !product.InStock() {
		return fmt.Errorf("%w: %s", ErrOutOfStock, product.ProductID)
	}
	for name, value := range options {
		if !product.HasOption(name, value) {
			return fmt.Errorf("%w: %s=%s", ErrInvalidOption, name, value)
		}
	}

	if idx := s.cart.FindItem(product.ProductID, options); idx >= 0 {
		s.cart.Items[idx].Quantity += quantity
	} else {
		s.cart.Items = append(s.cart.Items, model.CartItem{
			ProductID:       product.ProductID,
			ProductName:     product.Name,
			UnitPrice:       product.Price,
			Quantity:        quantity,
			SelectedOptions: options,
		})
	}

	if err := s.persist(ctx); err != nil {
		return err
	}
	if s.onOpen != nil {
		s.onOpen()
	}
	return nil
}

// Remove 移除指定 (商品, 規格) 的行項目，不存在則為 no-op
func (s *CartService) Remove(ctx context.Context, productID string, options map[string]string) error {
	idx := s.cart.FindItem(productID, options)
	if idx < 0 {
		return nil
	}
	s.cart.Items = append(s.cart.Items[:idx], s.cart.Items[idx+1:]...)
	return s.persist(ctx)
}

// UpdateQuantity 數量 < 1 時整個操作是 no-op，不會移除行項目
// 移除必須明確呼叫 Remove
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int, options map[string]string) error {
	if quantity < 1 {
		return nil
	}
	idx := s.cart.FindItem(productID, options)
	if idx < 0 {
		return nil
	}
	s.cart.Items[idx].Quantity = quantity
	return s.persist(ctx)
}

// Clear 無條件清空，只在訂單成功送出後呼叫
func (s *CartService) Clear(ctx context.Context) error {
	s.cart.Items = nil
	if err := s.storage.DeleteCart(ctx, s.sessionID, s.storeID); err != nil {
		return err
	}
	return nil
}

// Items 回傳行項目深拷貝，規格 map 也要複製，外部改動不能動到行識別
func (s *CartService) Items() []model.CartItem {
	items := make([]model.CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	for i := range items {
		if items[i].SelectedOptions == nil {
			continue
		}
		opts := make(map[string]string, len(items[i].SelectedOptions))
		for k, v := range items[i].SelectedOptions {
			opts[k] = v
		}
		items[i].SelectedOptions = opts
	}
	return items
}

// Total 每次讀取以目前單價重算，不使用快照
func (s *CartService) Total() decimal.Decimal {
	return s.cart.Total()
}

// Count 總件數
func (s *CartService) Count() int {
	return s.cart.Count()
}

// IsEmpty 空購物車不允許進入結帳
func (s *CartService) IsEmpty() bool {
	return s.cart.IsEmpty()
}

func (s *CartService) StoreID() string {
	return s.storeID
}

func (s *CartService) persist(ctx context.Context) error {
	if err := s.storage.SaveCart(ctx, s.sessionID, s.storeID, s.cart.Items); err != nil {
		s.logger.Error("failed to persist cart",
			zap.String("session_id", s.sessionID), zap.Error(err))
		return err
	}
	return nil
}
