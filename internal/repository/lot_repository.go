package repository

import (
	"context"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
)

type LotRepository interface {
	Create(ctx context.Context, lot model.Lot) (model.Lot, error)
	// 商品付きで1件取得
	FindByID(ctx context.Context, id int64) (model.Lot, error)
	// 新しい順
	List(ctx context.Context) ([]model.Lot, error)
	UpdateShippingCost(ctx context.Context, id int64, shippingCost float64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
