package repository

import (
	"context"
	"errors"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&cats).Error; err != nil {
		return []model.Category{}, err
	}
	return cats, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// 完全一致（大文字小文字を区別）
func (r *CategoryGormRepository) FindByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Category, error) {
	if len(ids) == 0 {
		return []model.Category{}, nil
	}
	var cats []model.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&cats).Error; err != nil {
		return []model.Category{}, err
	}
	return cats, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.Category{}, repo.ErrDuplicate
		}
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Rename(ctx context.Context, id int64, name string) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return repo.ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 紐付けを外してから削除（商品は消さない）
func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("category_id = ?", id).Delete(&model.ProductCategory{}).Error; err != nil {
		return err
	}
	res := db.Delete(&model.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 中間テーブルを作り直す（追加/削除の差分ではなく丸ごと置換）
func (r *CategoryGormRepository) ReplaceForProduct(ctx context.Context, productID int64, categoryIDs []int64) error {
	if err := r.DetachProduct(ctx, productID); err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]model.ProductCategory, 0, len(categoryIDs))
	seen := make(map[int64]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		links = append(links, model.ProductCategory{ProductID: productID, CategoryID: id})
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *CategoryGormRepository) DetachProduct(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.ProductCategory{}).Error
}
