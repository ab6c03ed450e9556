package repository

import (
	"context"
	"errors"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"gorm.io/gorm"
)

type PhotoGormRepository struct {
	db *gorm.DB
}

func NewPhotoGormRepository(db *gorm.DB) *PhotoGormRepository {
	return &PhotoGormRepository{db: db}
}

func (r *PhotoGormRepository) Create(ctx context.Context, photo model.Photo) (model.Photo, error) {
	if err := r.db.WithContext(ctx).Create(&photo).Error; err != nil {
		return model.Photo{}, err
	}
	return photo, nil
}

func (r *PhotoGormRepository) FindByID(ctx context.Context, id int64) (model.Photo, error) {
	var p model.Photo
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Photo{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Photo{}, err
	}
	return p, nil
}

func (r *PhotoGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.Photo, error) {
	var photos []model.Photo
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id asc").Find(&photos).Error
	if err != nil {
		return []model.Photo{}, err
	}
	return photos, nil
}

func (r *PhotoGormRepository) CountByProductID(ctx context.Context, productID int64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Photo{}).Where("product_id = ?", productID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 同名ファイルの行がすでにあるか
func (r *PhotoGormRepository) PathExists(ctx context.Context, path string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Photo{}).Where("path = ?", path).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PhotoGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Photo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PhotoGormRepository) DeleteByProductID(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.Photo{}).Error
}
