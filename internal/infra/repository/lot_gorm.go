package repository

import (
	"context"
	"errors"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LotGormRepository struct {
	db *gorm.DB
}

func NewLotGormRepository(db *gorm.DB) *LotGormRepository {
	return &LotGormRepository{db: db}
}

func (r *LotGormRepository) Create(ctx context.Context, lot model.Lot) (model.Lot, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&lot).Error; err != nil {
		return model.Lot{}, err
	}
	return lot, nil
}

func (r *LotGormRepository) FindByID(ctx context.Context, id int64) (model.Lot, error) {
	var lot model.Lot
	err := r.db.WithContext(ctx).
		Preload("Products", orderByName).
		First(&lot, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Lot{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Lot{}, err
	}
	return lot, nil
}

// 新しい順（商品付き）
func (r *LotGormRepository) List(ctx context.Context) ([]model.Lot, error) {
	var lots []model.Lot
	err := r.db.WithContext(ctx).
		Preload("Products", orderByName).
		Order("created_at desc").
		Order("id desc").
		Find(&lots).Error
	if err != nil {
		return []model.Lot{}, err
	}
	return lots, nil
}

func (r *LotGormRepository) UpdateShippingCost(ctx context.Context, id int64, shippingCost float64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Lot{}).
		Where("id = ?", id).
		Update("shipping_cost", shippingCost)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LotGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Lot{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LotGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Lot{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
