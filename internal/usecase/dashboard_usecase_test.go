package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	"github.com/Lucas16AR/stock-app/internal/metrics"
	repo "github.com/Lucas16AR/stock-app/internal/repository"
	"github.com/Lucas16AR/stock-app/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestMonthlyHistogram(t *testing.T) {
	rows := []repo.SaleReportRow{
		{Quantity: 3, CreatedAt: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{Quantity: 1, CreatedAt: time.Date(2024, time.March, 30, 0, 0, 0, 0, time.UTC)},
		{Quantity: 4, CreatedAt: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}

	got := usecase.MonthlyHistogram(rows)
	require.Len(t, got, 12)
	assert.Equal(t, "Jan", got[0].Label)
	assert.Equal(t, "Mar", got[2].Label)
	assert.Equal(t, int64(4), got[2].Quantity)
	assert.Equal(t, int64(4), got[11].Quantity)
	assert.Equal(t, int64(0), got[5].Quantity)
}

func TestEstimatedProfit(t *testing.T) {
	rows := []repo.SaleReportRow{
		// (20 - 13) * 2 = 14
		{Quantity: 2, UnitPrice: 20, PurchasePrice: f64(10), ShippingUnit: f64(2), ExtraCost: f64(1)},
		// (0.3 - 0.1) * 3 = 0.6
		{Quantity: 3, UnitPrice: 0.3, PurchasePrice: f64(0.1), ShippingUnit: f64(0), ExtraCost: f64(0)},
		// 商品削除済みは0
		{Quantity: 5, UnitPrice: 100},
	}
	assert.Equal(t, 14.6, usecase.EstimatedProfit(rows))
	assert.Equal(t, 0.0, usecase.EstimatedProfit(nil))
}

func TestDashboardUsecase_Summary_ComputesAndCaches(t *testing.T) {
	ctx := context.Background()
	sales := new(SaleRepoMock)
	inv := new(InventoryRepoMock)
	lots := new(LotRepoMock)
	products := new(ProductRepoMock)
	cache := new(CacheMock)

	cache.On("Get", mock.Anything, "dashboard:summary").Return(nil, false, nil)
	sales.On("SumQuantity", mock.Anything).Return(int64(7), nil)
	inv.On("SumStock", mock.Anything).Return(int64(40), nil)
	lots.On("Count", mock.Anything).Return(int64(2), nil)
	sales.On("ReportRows", mock.Anything).Return([]repo.SaleReportRow{
		{Quantity: 7, UnitPrice: 20, PurchasePrice: f64(10), ShippingUnit: f64(0), ExtraCost: f64(0),
			CreatedAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)
	inv.On("TopStocked", mock.Anything, 6).Return([]model.Product{{ID: 1, Name: "A", Quantity: 40}}, nil)
	cache.On("Set", mock.Anything, "dashboard:summary", mock.Anything, time.Minute).Return(nil)

	uc := usecase.NewDashboardUsecase(sales, inv, lots, products, nil, cache, time.Minute, nil, nil)

	s, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.TotalSold)
	assert.Equal(t, int64(40), s.TotalStock)
	assert.Equal(t, int64(2), s.TotalLots)
	assert.Equal(t, 70.0, s.EstimatedProfit)
	assert.Equal(t, int64(7), s.Monthly[2].Quantity)
	require.Len(t, s.TopProducts, 1)

	cache.AssertExpectations(t)
	sales.AssertExpectations(t)
}

func TestDashboardUsecase_Summary_CacheHit(t *testing.T) {
	ctx := context.Background()
	sales := new(SaleRepoMock)
	cache := new(CacheMock)

	b, err := json.Marshal(usecase.DashboardSummary{TotalSold: 99})
	require.NoError(t, err)
	cache.On("Get", mock.Anything, "dashboard:summary").Return(b, true, nil)

	uc := usecase.NewDashboardUsecase(sales, new(InventoryRepoMock), new(LotRepoMock), new(ProductRepoMock), nil, cache, time.Minute, nil, nil)

	s, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(99), s.TotalSold)
	sales.AssertNotCalled(t, "SumQuantity", mock.Anything)
}

func TestDashboardUsecase_Summary_ZeroTTLSkipsCache(t *testing.T) {
	ctx := context.Background()
	sales := new(SaleRepoMock)
	inv := new(InventoryRepoMock)
	lots := new(LotRepoMock)
	cache := new(CacheMock)
	m := metrics.New()

	sales.On("SumQuantity", mock.Anything).Return(int64(0), nil)
	inv.On("SumStock", mock.Anything).Return(int64(0), nil)
	lots.On("Count", mock.Anything).Return(int64(0), nil)
	sales.On("ReportRows", mock.Anything).Return([]repo.SaleReportRow{}, nil)
	inv.On("TopStocked", mock.Anything, 6).Return([]model.Product{}, nil)

	uc := usecase.NewDashboardUsecase(sales, inv, lots, new(ProductRepoMock), nil, cache, 0, m, nil)

	_, err := uc.Summary(ctx)
	require.NoError(t, err)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, testutil.CollectAndCount(m.CacheLookups))
}
