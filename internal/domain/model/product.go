package model

import (
	"encoding/json"
	"time"

	"github.com/Lucas16AR/stock-app/internal/domain/pricing"
)

// 1商品あたりの写真の上限
const MaxPhotosPerProduct = 4

// 在庫商品。推奨価格は保存せず、常にコストとマージンから計算する
type Product struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"type:varchar(150);not null" json:"name"`
	Quantity      int64      `gorm:"not null" json:"quantity"`
	PurchasePrice float64    `gorm:"not null" json:"purchase_price"`
	ShippingUnit  float64    `gorm:"not null" json:"shipping_unit"`
	ExtraCost     float64    `gorm:"not null" json:"extra_cost"`
	Margin        float64    `gorm:"not null" json:"margin"`
	LotID         *int64     `gorm:"index" json:"lot_id"`
	Categories    []Category `gorm:"many2many:product_categories" json:"categories"`
	Photos        []Photo    `gorm:"foreignKey:ProductID" json:"photos"`
	Sales         []Sale     `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"sales,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 仕入値＋送料（1個あたり）＋追加コスト
func (p Product) LandedCost() float64 {
	return pricing.LandedCost(p.PurchasePrice, p.ShippingUnit, p.ExtraCost)
}

func (p Product) SuggestedPrice() float64 {
	return pricing.SuggestedPrice(p.PurchasePrice, p.ShippingUnit, p.ExtraCost, p.Margin)
}

// JSONには計算値も載せる
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		LandedCost     float64 `json:"landed_cost"`
		SuggestedPrice float64 `json:"suggested_price"`
	}{
		plain:          plain(p),
		LandedCost:     p.LandedCost(),
		SuggestedPrice: p.SuggestedPrice(),
	})
}
