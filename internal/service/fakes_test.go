package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/lojify/storefront/internal/domain/model"
	"github.com/lojify/storefront/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

// memoryCartStorage 記憶體版購物車儲存，模擬 Redis 的整份序列化行為
type memoryCartStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
}

func newMemoryCartStorage() *memoryCartStorage {
	return &memoryCartStorage{data: map[string][]byte{}}
}

func cartKey(sessionID, storeID string) string {
	return sessionID + ":" + storeID
}

func (m *memoryCartStorage) LoadCart(ctx context.Context, sessionID, storeID string) ([]model.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[cartKey(sessionID, storeID)]
	if !ok {
		return nil, nil
	}
	var items []model.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// 毀損資料退化為空購物車
		return nil, nil
	}
	return items, nil
}

func (m *memoryCartStorage) SaveCart(ctx context.Context, sessionID, storeID string, items []model.CartItem) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[cartKey(sessionID, storeID)] = raw
	return nil
}

func (m *memoryCartStorage) DeleteCart(ctx context.Context, sessionID, storeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, cartKey(sessionID, storeID))
	return nil
}

func (m *memoryCartStorage) putRaw(sessionID, storeID string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[cartKey(sessionID, storeID)] = raw
}

// fakeCouponRepo 以 (store, code) 為鍵的記憶體折扣碼表
type fakeCouponRepo struct {
	coupons map[string]*model.Coupon // key: storeID + "|" + code
}

func newFakeCouponRepo(coupons ...*model.Coupon) *fakeCouponRepo {
	repo := &fakeCouponRepo{coupons: map[string]*model.Coupon{}}
	for _, c := range coupons {
		repo.coupons[c.StoreID+"|"+c.Code] = c
	}
	return repo
}

func (f *fakeCouponRepo) CreateCoupon(ctx context.Context, coupon *model.Coupon) error {
	if err := coupon.Validate(); err != nil {
		return err
	}
	f.coupons[coupon.StoreID+"|"+coupon.Code] = coupon
	return nil
}

func (f *fakeCouponRepo) GetActiveCoupon(ctx context.Context, storeID, code string) (*model.Coupon, error) {
	c, ok := f.coupons[storeID+"|"+code]
	if !ok || !c.Active {
		return nil, db.ErrCouponNotFound
	}
	return c, nil
}

func (f *fakeCouponRepo) GetCouponsByStore(ctx context.Context, storeID string) ([]model.Coupon, error) {
	var out []model.Coupon
	for _, c := range f.coupons {
		if c.StoreID == storeID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCouponRepo) SetCouponActive(ctx context.Context, couponID string, active bool) error {
	for _, c := range f.coupons {
		if c.CouponID == couponID {
			c.Active = active
			return nil
		}
	}
	return db.ErrCouponNotFound
}

func (f *fakeCouponRepo) DeleteCoupon(ctx context.Context, couponID string) error {
	for k, c := range f.coupons {
		if c.CouponID == couponID {
			delete(f.coupons, k)
			return nil
		}
	}
	return db.ErrCouponNotFound
}

type fakeProductRepo struct {
	products map[string]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: map[string]*model.Product{}}
	for _, p := range products {
		repo.products[p.ProductID] = p
	}
	return repo
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	f.products[product.ProductID] = product
	return nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, db.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetActiveProductsByStore(ctx context.Context, storeID string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.StoreID == storeID && p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	f.products[product.ProductID] = product
	return nil
}

type fakeStoreRepo struct {
	stores map[string]*model.Store
}

func newFakeStoreRepo(stores ...*model.Store) *fakeStoreRepo {
	repo := &fakeStoreRepo{stores: map[string]*model.Store{}}
	for _, s := range stores {
		repo.stores[s.StoreID] = s
	}
	return repo
}

func (f *fakeStoreRepo) CreateStore(ctx context.Context, store *model.Store) error {
	f.stores[store.StoreID] = store
	return nil
}

func (f *fakeStoreRepo) GetStoreByID(ctx context.Context, storeID string) (*model.Store, error) {
	s, ok := f.stores[storeID]
	if !ok {
		return nil, db.ErrStoreNotFound
	}
	return s, nil
}

func (f *fakeStoreRepo) GetStoreBySlug(ctx context.Context, slug string) (*model.Store, error) {
	for _, s := range f.stores {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, db.ErrStoreNotFound
}

func (f *fakeStoreRepo) GetShippingConfig(ctx context.Context, storeID string) (*model.ShippingConfig, error) {
	s, err := f.GetStoreByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	cfg := s.Shipping()
	return &cfg, nil
}

func (f *fakeStoreRepo) UpdateStore(ctx context.Context, store *model.Store) error {
	f.stores[store.StoreID] = store
	return nil
}

type fakeOrderRepo struct {
	orders    map[string]*model.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*model.Order{}}
}

func (f *fakeOrderRepo) CreateOrderWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	if len(items) == 0 {
		return errors.New("no items")
	}
	stored := *order
	stored.Items = items
	f.orders[order.OrderID] = &stored
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, db.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) GetOrdersByStore(ctx context.Context, storeID string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.StoreID == storeID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetOrdersPaginated(ctx context.Context, storeID string, page, pageSize int) ([]model.Order, int64, error) {
	orders, _ := f.GetOrdersByStore(ctx, storeID)
	return orders, int64(len(orders)), nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return db.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

// recordingProducer 記錄發佈過的事件
type recordingProducer struct {
	created       []string
	statusChanged []string
}

func (r *recordingProducer) ProduceOrderCreatedEvent(ctx context.Context, order *model.Order, subtotal decimal.Decimal) error {
	r.created = append(r.created, order.OrderID)
	return nil
}

func (r *recordingProducer) ProduceOrderStatusChangedEvent(ctx context.Context, order *model.Order, from, to model.OrderStatus) error {
	r.statusChanged = append(r.statusChanged, order.OrderID+":"+string(from)+"->"+string(to))
	return nil
}

func (r *recordingProducer) Close() error { return nil }
