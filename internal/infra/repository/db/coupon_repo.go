package db

import (
	"context"
	"errors"

	"github.com/lojify/storefront/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrCouponNotFound 查無符合條件的折扣碼，不區分不存在/停用/跨店
	ErrCouponNotFound = errors.New("coupon not found")
)

// ICouponRepository 折扣碼存取介面
type ICouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *model.Coupon) error
	GetActiveCoupon(ctx context.Context, storeID, code string) (*model.Coupon, error)
	GetCouponsByStore(ctx context.Context, storeID string) ([]model.Coupon, error)
	SetCouponActive(ctx context.Context, couponID string, active bool) error
	DeleteCoupon(ctx context.Context, couponID string) error
}

type CouponRepo struct {
	db *DbDao
}

func NewCouponRepo(db *DbDao) *CouponRepo {
	return &CouponRepo{db: db}
}

func (s *CouponRepo) CreateCoupon(ctx context.Context, coupon *model.Coupon) error {
	if err := coupon.Validate(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(coupon).Error
}

// GetActiveCoupon 依 (店家, 代碼, 啟用) 精確查詢
// store_id 條件擋掉跨租戶撈取，code 由呼叫端先正規化
func (s *CouponRepo) GetActiveCoupon(ctx context.Context, storeID, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := s.db.WithContext(ctx).
		Where("store_id = ? AND code = ? AND active = true", storeID, code).
		First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (s *CouponRepo) GetCouponsByStore(ctx context.Context, storeID string) ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := s.db.WithContext(ctx).Where("store_id = ?", storeID).Find(&coupons).Error
	return coupons, err
}

func (s *CouponRepo) SetCouponActive(ctx context.Context, couponID string, active bool) error {
	return s.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("coupon_id = ?", couponID).
		Update("active", active).Error
}

// DeleteCoupon 硬刪除
// (store_id, code) 有唯一索引，軟刪除的列仍佔用索引，會讓同代碼無法重建
func (s *CouponRepo) DeleteCoupon(ctx context.Context, couponID string) error {
	return s.db.WithContext(ctx).Unscoped().Where("coupon_id = ?", couponID).Delete(&model.Coupon{}).Error
}

var _ ICouponRepository = (*CouponRepo)(nil)
