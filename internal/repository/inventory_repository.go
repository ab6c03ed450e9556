package repository

import (
	"context"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
)

type InventoryRepository interface {
	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 全商品の在庫合計
	SumStock(ctx context.Context) (int64, error)

	// 在庫の多い順
	TopStocked(ctx context.Context, limit int) ([]model.Product, error)
}
