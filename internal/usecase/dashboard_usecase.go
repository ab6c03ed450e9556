package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	"github.com/Lucas16AR/stock-app/internal/domain/pricing"
	"github.com/Lucas16AR/stock-app/internal/metrics"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	dashboardCacheKey = "dashboard:summary"
	topProductsLimit  = 6
)

type MonthBucket struct {
	Month    int    `json:"month"`
	Label    string `json:"label"`
	Quantity int64  `json:"quantity"`
}

type DashboardSummary struct {
	TotalSold       int64           `json:"total_sold"`
	TotalStock      int64           `json:"total_stock"`
	TotalLots       int64           `json:"total_lots"`
	EstimatedProfit float64         `json:"estimated_profit"`
	Monthly         []MonthBucket   `json:"monthly"`
	TopProducts     []model.Product `json:"top_products"`
}

type DashboardUsecase struct {
	sales     repo.SaleRepository
	inventory repo.InventoryRepository
	lots      repo.LotRepository
	products  repo.ProductRepository
	store     *PhotoStore
	cache     repo.Cache
	ttl       time.Duration
	metrics   *metrics.Metrics
	log       *zap.Logger
}

// DI
func NewDashboardUsecase(
	sales repo.SaleRepository,
	inventory repo.InventoryRepository,
	lots repo.LotRepository,
	products repo.ProductRepository,
	store *PhotoStore,
	cache repo.Cache,
	ttl time.Duration,
	m *metrics.Metrics,
	log *zap.Logger,
) *DashboardUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &DashboardUsecase{
		sales:     sales,
		inventory: inventory,
		lots:      lots,
		products:  products,
		store:     store,
		cache:     cache,
		ttl:       ttl,
		metrics:   m,
		log:       log,
	}
}

func (u *DashboardUsecase) Summary(ctx context.Context) (DashboardSummary, error) {
	if s, ok := u.cached(ctx); ok {
		return s, nil
	}

	s, err := u.compute(ctx)
	if err != nil {
		return DashboardSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.cache != nil && u.ttl > 0 {
		if b, err := json.Marshal(s); err == nil {
			if err := u.cache.Set(ctx, dashboardCacheKey, b, u.ttl); err != nil {
				u.log.Warn("dashboard cache set failed", zap.Error(err))
			}
		}
	}
	return s, nil
}

func (u *DashboardUsecase) cached(ctx context.Context) (DashboardSummary, bool) {
	if u.cache == nil || u.ttl <= 0 {
		return DashboardSummary{}, false
	}
	b, ok, err := u.cache.Get(ctx, dashboardCacheKey)
	if err != nil {
		//キャッシュが落ちていてもDBから返す
		u.log.Warn("dashboard cache get failed", zap.Error(err))
		return DashboardSummary{}, false
	}
	var s DashboardSummary
	if ok && json.Unmarshal(b, &s) == nil {
		u.countLookup("hit")
		return s, true
	}
	u.countLookup("miss")
	return DashboardSummary{}, false
}

func (u *DashboardUsecase) countLookup(result string) {
	if u.metrics != nil {
		u.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}

func (u *DashboardUsecase) compute(ctx context.Context) (DashboardSummary, error) {
	sold, err := u.sales.SumQuantity(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	stock, err := u.inventory.SumStock(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	lots, err := u.lots.Count(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	rows, err := u.sales.ReportRows(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}
	top, err := u.inventory.TopStocked(ctx, topProductsLimit)
	if err != nil {
		return DashboardSummary{}, err
	}

	return DashboardSummary{
		TotalSold:       sold,
		TotalStock:      stock,
		TotalLots:       lots,
		EstimatedProfit: EstimatedProfit(rows),
		Monthly:         MonthlyHistogram(rows),
		TopProducts:     top,
	}, nil
}

// 在庫一覧（名前順）
func (u *DashboardUsecase) StockReport(ctx context.Context) ([]model.Product, error) {
	items, err := u.products.List(ctx, repo.ProductListQuery{})
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	u.store.fillProductURLs(items)
	return items, nil
}

// 月ごとの販売数（年は区別しない）
func MonthlyHistogram(rows []repo.SaleReportRow) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		m := time.Month(i + 1)
		buckets[i] = MonthBucket{Month: int(m), Label: m.String()[:3]}
	}
	for _, r := range rows {
		if r.CreatedAt.IsZero() {
			continue
		}
		buckets[int(r.CreatedAt.Month())-1].Quantity += r.Quantity
	}
	return buckets
}

// Σ (販売単価 - 原価) * 数量。商品が削除済みの販売は0
func EstimatedProfit(rows []repo.SaleReportRow) float64 {
	total := decimal.Zero
	for _, r := range rows {
		if r.PurchasePrice == nil {
			continue
		}
		landed := pricing.LandedCost(*r.PurchasePrice, deref(r.ShippingUnit), deref(r.ExtraCost))
		total = total.Add(pricing.LineProfit(r.UnitPrice, landed, r.Quantity))
	}
	return pricing.Round2(total)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// 更新系のあとに呼ぶ。失敗しても処理は続ける
func invalidateDashboard(ctx context.Context, c repo.Cache, log *zap.Logger) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, dashboardCacheKey); err != nil {
		log.Warn("dashboard cache invalidate failed", zap.Error(err))
	}
}
