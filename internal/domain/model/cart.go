package model

import (
	"github.com/lojify/storefront/internal/pkg/util"
	"github.com/shopspring/decimal"
)

// CartItem 購物車行項目
// 識別鍵 = ProductID + 正規化後的規格選擇；同鍵加入會合併數量
// ProductName / UnitPrice 只作顯示用途，結算一律以目前目錄價格為準
type CartItem struct {
	ProductID       string            `json:"product_id"`
	ProductName     string            `json:"product_name"`
	UnitPrice       decimal.Decimal   `json:"unit_price"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selected_options,omitempty"`
}

// Key 行項目識別鍵
func (i *CartItem) Key() string {
	return i.ProductID + "|" + util.CanonicalOptionKey(i.SelectedOptions)
}

// Subtotal 行小計 = 單價 × 數量
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart 一個購物階段的全部行項目，保留插入順序供前台顯示
type Cart struct {
	SessionID string     `json:"session_id"`
	StoreID   string     `json:"store_id"`
	Items     []CartItem `json:"items"`
}

// Total 以目前單價計算的總金額，每次讀取重新計算
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// Count 總件數
func (c *Cart) Count() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// IsEmpty 空購物車不允許結帳
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem 依識別鍵尋找行項目，找不到回傳 -1
func (c *Cart) FindItem(productID string, options map[string]string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && util.OptionsEqual(c.Items[i].SelectedOptions, options) {
			return i
		}
	}
	return -1
}
