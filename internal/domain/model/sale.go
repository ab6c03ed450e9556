package model

import "time"

// 販売記録。作成後は変更しない
// 商品が削除されても残るので ProductID は nil になりうる
type Sale struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   *int64    `gorm:"index" json:"product_id"`
	ProductName string    `gorm:"type:varchar(150);not null;default:''" json:"product_name"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
