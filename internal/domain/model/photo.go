package model

import "time"

// 商品写真。Pathはストレージ上のファイル名
type Photo struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Path      string    `gorm:"type:varchar(300);not null;uniqueIndex" json:"path"`
	URL       string    `gorm:"-" json:"url,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
