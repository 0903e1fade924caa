package model

import (
	"github.com/shopspring/decimal"
)

// Store 商店（租戶）
// 結帳引擎只關心運費設定與 Pix 顯示資訊，其餘欄位屬於後台
type Store struct {
	StoreID               string           `gorm:"primaryKey;type:varchar(255)" json:"store_id"`
	OwnerID               string           `gorm:"not null;type:varchar(255)" json:"owner_id"`
	Name                  string           `gorm:"not null;type:varchar(100)" json:"name"`
	Slug                  string           `gorm:"not null;type:varchar(100);unique" json:"slug"`
	ShippingCost          decimal.Decimal  `gorm:"not null;type:decimal(10,2);default:0" json:"shipping_cost"`
	FreeShippingThreshold *decimal.Decimal `gorm:"type:decimal(10,2)" json:"free_shipping_threshold,omitempty"`
	PixKey                string           `gorm:"type:varchar(255)" json:"pix_key,omitempty"`
	PixInstructions       string           `gorm:"type:text" json:"pix_instructions,omitempty"`
	BaseModel
}

// ShippingConfig 運費計算所需的商店設定子集
// FreeShippingThreshold 為 nil 表示該店未啟用免運
type ShippingConfig struct {
	FixedCost             decimal.Decimal  `json:"fixed_cost"`
	FreeShippingThreshold *decimal.Decimal `json:"free_shipping_threshold,omitempty"`
}

func (s *Store) Shipping() ShippingConfig {
	return ShippingConfig{
		FixedCost:             s.ShippingCost,
		FreeShippingThreshold: s.FreeShippingThreshold,
	}
}
