package repository

import (
	"context"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"gorm.io/gorm"
)

type SaleGormRepository struct {
	db *gorm.DB
}

func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

func (r *SaleGormRepository) Create(ctx context.Context, sale model.Sale) (model.Sale, error) {
	if err := r.db.WithContext(ctx).Create(&sale).Error; err != nil {
		return model.Sale{}, err
	}
	return sale, nil
}

// 新しい順
func (r *SaleGormRepository) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Find(&sales).Error
	if err != nil {
		return []model.Sale{}, err
	}
	return sales, nil
}

// 販売履歴は残し、商品への参照だけ外す
func (r *SaleGormRepository) DetachProduct(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Sale{}).
		Where("product_id = ?", productID).
		Update("product_id", gorm.Expr("NULL")).Error
}

func (r *SaleGormRepository) SumQuantity(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Sale{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// 販売と（残っていれば）商品のコストをまとめて取る
func (r *SaleGormRepository) ReportRows(ctx context.Context) ([]repo.SaleReportRow, error) {
	var rows []repo.SaleReportRow
	err := r.db.WithContext(ctx).
		Table("sales").
		Select("sales.quantity, sales.unit_price, sales.created_at, " +
			"products.purchase_price, products.shipping_unit, products.extra_cost").
		Joins("LEFT JOIN products ON products.id = sales.product_id").
		Order("sales.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.SaleReportRow{}, err
	}
	return rows, nil
}
