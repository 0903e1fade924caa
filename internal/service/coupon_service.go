package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lojify/storefront/internal/domain/model"
	"github.com/lojify/storefront/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCoupon 對外只有一種說法，不區分不存在/停用/跨店，避免被列舉
	ErrInvalidCoupon = errors.New("invalid or expired coupon")
)

// ICouponService 折扣碼驗證與後台管理介面
type ICouponService interface {
	ValidateCoupon(ctx context.Context, storeID, rawCode string, subtotal decimal.Decimal) (*model.AppliedCoupon, error)
	CreateCoupon(ctx context.Context, storeID, code string, discountPercentage decimal.Decimal) (*model.Coupon, error)
	ListCoupons(ctx context.Context, storeID string) ([]model.Coupon, error)
	SetCouponActive(ctx context.Context, couponID string, active bool) error
	DeleteCoupon(ctx context.Context, couponID string) error
}

type CouponService struct {
	couponRepo db.ICouponRepository
	logger     *zap.Logger
}

func NewCouponService(couponRepo db.ICouponRepository, logger *zap.Logger) *CouponService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CouponService{couponRepo: couponRepo, logger: logger}
}

// ValidateCoupon 正規化 -> 精確比對 (店家, 代碼, 啟用)
// subtotal 保留給未來的低消規則，目前不參與判斷
// 驗證失敗不是致命錯誤，結帳照常進行只是不套折扣
func (s *CouponService) ValidateCoupon(ctx context.Context, storeID, rawCode string, subtotal decimal.Decimal) (*model.AppliedCoupon, error) {
	code := model.NormalizeCouponCode(rawCode)
	if code == "" {
		return nil, ErrInvalidCoupon
	}

	coupon, err := s.couponRepo.GetActiveCoupon(ctx, storeID, code)
	if errors.Is(err, db.ErrCouponNotFound) {
		s.logger.Info("coupon rejected",
			zap.String("store_id", storeID), zap.String("code", code))
		return nil, ErrInvalidCoupon
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}

	return &model.AppliedCoupon{
		Code:               coupon.Code,
		DiscountPercentage: coupon.DiscountPercentage,
	}, nil
}

// CreateCoupon 後台建立折扣碼，比例超出 (0,100] 在這裡就擋下
func (s *CouponService) CreateCoupon(ctx context.Context, storeID, code string, discountPercentage decimal.Decimal) (*model.Coupon, error) {
	coupon := &model.Coupon{
		CouponID:           uuid.NewString(),
		StoreID:            storeID,
		Code:               code,
		DiscountPercentage: discountPercentage,
		Active:             true,
	}
	if err := s.couponRepo.CreateCoupon(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) ListCoupons(ctx context.Context, storeID string) ([]model.Coupon, error) {
	return s.couponRepo.GetCouponsByStore(ctx, storeID)
}

func (s *CouponService) SetCouponActive(ctx context.Context, couponID string, active bool) error {
	return s.couponRepo.SetCouponActive(ctx, couponID, active)
}

func (s *CouponService) DeleteCoupon(ctx context.Context, couponID string) error {
	return s.couponRepo.DeleteCoupon(ctx, couponID)
}

var _ ICouponService = (*CouponService)(nil)
