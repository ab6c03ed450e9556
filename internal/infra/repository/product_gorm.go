package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 名前順の一覧。カテゴリ/在庫ありで絞り込み
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	var products []model.Product

	tx := r.db.WithContext(ctx).Model(&model.Product{}).
		Preload("Categories", orderByName).
		Preload("Photos", orderByID)

	if q.CategoryID != nil {
		tx = tx.Joins("JOIN product_categories pc ON pc.product_id = products.id AND pc.category_id = ?", *q.CategoryID)
	}
	if q.InStockOnly {
		tx = tx.Where("products.quantity > ?", 0)
	}

	if err := tx.Order("products.name asc").Order("products.id asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 詳細（カテゴリ・写真・販売履歴）
func (r *ProductGormRepository) FindDetail(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Categories", orderByName).
		Preload("Photos", orderByID).
		Preload("Sales", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc").Order("id desc")
		}).
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) ListByLotID(ctx context.Context, lotID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 商品の作成（関連は別で保存する）
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新（スカラー項目を全部上書き）
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":           p.Name,
		"quantity":       p.Quantity,
		"purchase_price": p.PurchasePrice,
		"shipping_unit":  p.ShippingUnit,
		"extra_cost":     p.ExtraCost,
		"margin":         p.Margin,
		"lot_id":         p.LotID,
		"updated_at":     time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除（物理削除）
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name asc")
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}
