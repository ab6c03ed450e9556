package repository

import (
	"context"
	"errors"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反
var ErrDuplicate = errors.New("duplicate")

// 一覧検索
type ProductListQuery struct {
	CategoryID  *int64
	InStockOnly bool
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// 名前順。カテゴリと写真をPreloadする
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// 詳細画面用（カテゴリ・写真・販売履歴付き）
	FindDetail(ctx context.Context, id int64) (model.Product, error)
	ListByLotID(ctx context.Context, lotID int64) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
