package service

import (
	"github.com/lojify/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeBreakdown 結帳金額計算，純函數
// 計算順序固定：小計 -> 折扣 -> 免運判定 -> 運費 -> 總額
//
// 免運門檻比對的是「折扣前」小計，不是折掉之後的金額
// 這是既定商業規則，改動評估順序需要另外簽核，不要順手修掉
func ComputeBreakdown(items []model.CartItem, shipping model.ShippingConfig, coupon *model.AppliedCoupon) model.Breakdown {
	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].Subtotal())
	}

	discount := decimal.Zero
	couponCode := ""
	if coupon != nil {
		discount = subtotal.Mul(coupon.DiscountPercentage).Div(oneHundred).Round(2)
		couponCode = coupon.Code
	}

	freeShipping := shipping.FreeShippingThreshold != nil &&
		subtotal.GreaterThanOrEqual(*shipping.FreeShippingThreshold)

	shippingCost := shipping.FixedCost
	if freeShipping {
		shippingCost = decimal.Zero
	}

	total := subtotal.Sub(discount).Add(shippingCost).Round(2)

	return model.Breakdown{
		Subtotal:   subtotal,
		Discount:   discount,
		Shipping:   shippingCost,
		Total:      total,
		CouponCode: couponCode,
	}
}
