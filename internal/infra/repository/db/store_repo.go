package db

import (
	"context"
	"errors"

	"github.com/lojify/storefront/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrStoreNotFound 商店不存在
	ErrStoreNotFound = errors.New("store not found")
)

// IStoreRepository 商店設定存取介面
type IStoreRepository interface {
	CreateStore(ctx context.Context, store *model.Store) error
	GetStoreByID(ctx context.Context, storeID string) (*model.Store, error)
	GetStoreBySlug(ctx context.Context, slug string) (*model.Store, error)
	GetShippingConfig(ctx context.Context, storeID string) (*model.ShippingConfig, error)
	UpdateStore(ctx context.Context, store *model.Store) error
}

type StoreRepo struct {
	db *DbDao
}

func NewStoreRepo(db *DbDao) *StoreRepo {
	return &StoreRepo{db: db}
}

func (s *StoreRepo) CreateStore(ctx context.Context, store *model.Store) error {
	return s.db.WithContext(ctx).Create(store).Error
}

func (s *StoreRepo) GetStoreByID(ctx context.Context, storeID string) (*model.Store, error) {
	var store model.Store
	err := s.db.WithContext(ctx).First(&store, "store_id = ?", storeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (s *StoreRepo) GetStoreBySlug(ctx context.Context, slug string) (*model.Store, error) {
	var store model.Store
	err := s.db.WithContext(ctx).First(&store, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// GetShippingConfig 結帳計價用的運費設定
func (s *StoreRepo) GetShippingConfig(ctx context.Context, storeID string) (*model.ShippingConfig, error) {
	store, err := s.GetStoreByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	cfg := store.Shipping()
	return &cfg, nil
}

func (s *StoreRepo) UpdateStore(ctx context.Context, store *model.Store) error {
	return s.db.WithContext(ctx).Save(store).Error
}

var _ IStoreRepository = (*StoreRepo)(nil)
