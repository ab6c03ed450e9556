package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	"github.com/Lucas16AR/stock-app/internal/metrics"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"go.uber.org/zap"
)

type SaleUsecase struct {
	tx       repo.TransactionManager
	sales    repo.SaleRepository
	products repo.ProductRepository
	store    *PhotoStore
	cache    repo.Cache
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// DI
func NewSaleUsecase(
	tx repo.TransactionManager,
	sales repo.SaleRepository,
	products repo.ProductRepository,
	store *PhotoStore,
	cache repo.Cache,
	m *metrics.Metrics,
	log *zap.Logger,
) *SaleUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &SaleUsecase{
		tx:       tx,
		sales:    sales,
		products: products,
		store:    store,
		cache:    cache,
		metrics:  m,
		log:      log,
	}
}

type SaleInput struct {
	ProductID int64
	Quantity  int64
	UnitPrice float64
}

// 販売画面（履歴＋在庫のある商品）
type SalesPage struct {
	Sales    []model.Sale    `json:"sales"`
	Products []model.Product `json:"products"`
}

func (u *SaleUsecase) List(ctx context.Context) (SalesPage, error) {
	sales, err := u.sales.List(ctx)
	if err != nil {
		return SalesPage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	products, err := u.products.List(ctx, repo.ProductListQuery{InStockOnly: true})
	if err != nil {
		return SalesPage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	u.store.fillProductURLs(products)
	return SalesPage{Sales: sales, Products: products}, nil
}

// 在庫を確認して減らし、販売を記録する（同一Tx）
func (u *SaleUsecase) Record(ctx context.Context, in SaleInput) (model.Sale, error) {
	if in.Quantity <= 0 {
		return model.Sale{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}
	if in.UnitPrice < 0 {
		return model.Sale{}, NewHTTPError(http.StatusBadRequest, "unit_price must be >= 0")
	}
	if in.ProductID <= 0 {
		return model.Sale{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	var sale model.Sale
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			return err
		}
		if in.Quantity > p.Quantity {
			return &InsufficientStockError{Available: p.Quantity}
		}

		//在庫減算（条件付きUPDATE）
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, p.ID, in.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			//読んだ後に別の販売で減った
			latest, err := r.Products().FindByID(ctx, p.ID)
			if err != nil {
				return err
			}
			return &InsufficientStockError{Available: latest.Quantity}
		}

		productID := p.ID
		sale, err = r.Sales().Create(ctx, model.Sale{
			ProductID:   &productID,
			ProductName: p.Name,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
		})
		return err
	})
	if err != nil {
		return model.Sale{}, wrapDBError(err)
	}

	if u.metrics != nil {
		u.metrics.SalesRecorded.Inc()
		u.metrics.UnitsSold.Add(float64(sale.Quantity))
	}
	invalidateDashboard(ctx, u.cache, u.log)
	u.log.Info("sale recorded",
		zap.Int64("sale_id", sale.ID),
		zap.Int64("product_id", in.ProductID),
		zap.Int64("quantity", sale.Quantity),
	)
	return sale, nil
}
