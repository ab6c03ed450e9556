package repository

import (
	"context"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	FindByName(ctx context.Context, name string) (model.Category, error)
	// 見つからないIDは結果に含まれない
	FindByIDs(ctx context.Context, ids []int64) ([]model.Category, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	Rename(ctx context.Context, id int64, name string) error
	// 商品との紐付けも外す
	Delete(ctx context.Context, id int64) error

	// 商品のカテゴリを丸ごと置き換える
	ReplaceForProduct(ctx context.Context, productID int64, categoryIDs []int64) error
	// 商品からすべてのカテゴリを外す
	DetachProduct(ctx context.Context, productID int64) error
}
