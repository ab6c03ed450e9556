package repository

import (
	"context"
	"time"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
)

// ダッシュボード集計用の1行。商品が削除済みならコストは nil
type SaleReportRow struct {
	Quantity      int64
	UnitPrice     float64
	CreatedAt     time.Time
	PurchasePrice *float64
	ShippingUnit  *float64
	ExtraCost     *float64
}

type SaleRepository interface {
	Create(ctx context.Context, sale model.Sale) (model.Sale, error)
	// 新しい順
	List(ctx context.Context) ([]model.Sale, error)
	// 商品削除時に product_id を NULL にする
	DetachProduct(ctx context.Context, productID int64) error
	SumQuantity(ctx context.Context) (int64, error)
	ReportRows(ctx context.Context) ([]SaleReportRow, error)
}
