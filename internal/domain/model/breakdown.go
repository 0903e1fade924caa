package model

import (
	"github.com/shopspring/decimal"
)

// Breakdown 結帳金額拆解
// Total = round2(Subtotal - Discount + Shipping)
type Breakdown struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Shipping   decimal.Decimal `json:"shipping"`
	Total      decimal.Decimal `json:"total"`
	CouponCode string          `json:"coupon_code,omitempty"`
}
