package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrCouponCodeInvalid     = errors.New("coupon code must be uppercase alphanumeric")
	ErrCouponDiscountInvalid = errors.New("coupon discount percentage must be in (0, 100]")
)

// Coupon 折扣碼，code 以大寫儲存，同店唯一
type Coupon struct {
	CouponID           string          `gorm:"primaryKey;type:varchar(255)" json:"coupon_id"`
	StoreID            string          `gorm:"not null;type:varchar(255);uniqueIndex:idx_store_code" json:"store_id"`
	Code               string          `gorm:"not null;type:varchar(50);uniqueIndex:idx_store_code" json:"code"`
	DiscountPercentage decimal.Decimal `gorm:"not null;type:decimal(5,2)" json:"discount_percentage"`
	Active             bool            `gorm:"not null;default:true" json:"active"`
	BaseModel
}

// NormalizeCouponCode 去除前後空白並轉大寫，查詢與儲存都走同一條路
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate 建立時驗證，折扣比例必須落在 (0, 100]
// 無效比例在這裡擋下，計價階段可以信任已儲存的 coupon
func (c *Coupon) Validate() error {
	code := NormalizeCouponCode(c.Code)
	if code == "" {
		return ErrCouponCodeInvalid
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return ErrCouponCodeInvalid
		}
	}
	if !c.DiscountPercentage.IsPositive() || c.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return ErrCouponDiscountInvalid
	}
	c.Code = code
	return nil
}

// AppliedCoupon 驗證通過後附加在結帳上的折扣，一次只會有一個
type AppliedCoupon struct {
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}
