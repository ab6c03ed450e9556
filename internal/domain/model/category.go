package model

// 商品に付けるタグ。名前は大文字小文字を区別して一意
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
}

// 商品とカテゴリの中間テーブル（追加カラムなし）
type ProductCategory struct {
	ProductID  int64 `gorm:"primaryKey"`
	CategoryID int64 `gorm:"primaryKey"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}
