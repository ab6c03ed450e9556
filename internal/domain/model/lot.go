package model

import "time"

// 仕入れロット。送料はロット全体にかかる
type Lot struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ShippingCost float64   `gorm:"not null;default:0" json:"shipping_cost"`
	Products     []Product `gorm:"foreignKey:LotID" json:"products"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
