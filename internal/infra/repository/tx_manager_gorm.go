package repository

import (
	"context"

	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	lots       repo.LotRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	categories repo.CategoryRepository
	photos     repo.PhotoRepository
	sales      repo.SaleRepository
}

func (r *txReposGorm) Lots() repo.LotRepository            { return r.lots }
func (r *txReposGorm) Products() repo.ProductRepository    { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository { return r.inventory }
func (r *txReposGorm) Categories() repo.CategoryRepository { return r.categories }
func (r *txReposGorm) Photos() repo.PhotoRepository        { return r.photos }
func (r *txReposGorm) Sales() repo.SaleRepository          { return r.sales }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			lots:       NewLotGormRepository(tx),
			products:   NewProductGormRepository(tx),
			inventory:  NewInventoryGormRepository(tx),
			categories: NewCategoryGormRepository(tx),
			photos:     NewPhotoGormRepository(tx),
			sales:      NewSaleGormRepository(tx),
		}
		return fn(r)
	})
}
