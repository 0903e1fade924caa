package db

import (
	"context"
	"errors"

	"github.com/lojify/storefront/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
)

// IProductRepository 商品目錄讀取介面
// 購物車只讀目錄，不寫；建立/更新屬於後台流程
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID string) (*model.Product, error)
	GetActiveProductsByStore(ctx context.Context, storeID string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
}

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetActiveProductsByStore(ctx context.Context, storeID string) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Where("store_id = ? AND active = true", storeID).
		Find(&products).Error
	return products, err
}

func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

var _ IProductRepository = (*ProductRepo)(nil)
