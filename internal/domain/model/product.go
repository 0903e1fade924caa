package model

import (
	"github.com/shopspring/decimal"
)

// ProductOption 商品規格，例如 "Tamanho" -> ["P","M","G"]
// Values 順序即為前台顯示順序
type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Product 商品目錄實體
// 購物車只引用商品，不持有商品；價格快照發生在訂單建立當下
type Product struct {
	ProductID   string          `gorm:"primaryKey;type:varchar(255)" json:"product_id"`
	StoreID     string          `gorm:"not null;type:varchar(255);index" json:"store_id"`
	Name        string          `gorm:"not null;type:varchar(100)" json:"name"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Category    string          `gorm:"type:varchar(50)" json:"category,omitempty"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	Options     []ProductOption `gorm:"serializer:json;type:jsonb" json:"options,omitempty"`
	BaseModel
}

// HasOption 檢查商品是否宣告了指定規格與值
func (p *Product) HasOption(name, value string) bool {
	for _, opt := range p.Options {
		if opt.Name != name {
			continue
		}
		for _, v := range opt.Values {
			if v == value {
				return true
			}
		}
	}
	return false
}

// InStock 庫存數可能被後台寫成負數，一律視為 0
func (p *Product) InStock() bool {
	return p.Stock > 0
}
