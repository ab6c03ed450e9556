package usecase_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	"github.com/Lucas16AR/stock-app/internal/infra/storage"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	lots       repo.LotRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	categories repo.CategoryRepository
	photos     repo.PhotoRepository
	sales      repo.SaleRepository
}

func (r *TxReposMock) Lots() repo.LotRepository            { return r.lots }
func (r *TxReposMock) Products() repo.ProductRepository    { return r.products }
func (r *TxReposMock) Inventory() repo.InventoryRepository { return r.inventory }
func (r *TxReposMock) Categories() repo.CategoryRepository { return r.categories }
func (r *TxReposMock) Photos() repo.PhotoRepository        { return r.photos }
func (r *TxReposMock) Sales() repo.SaleRepository          { return r.sales }

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindDetail(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ListByLotID(ctx context.Context, lotID int64) ([]model.Product, error) {
	args := m.Called(ctx, lotID)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) SumStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InventoryRepoMock) TopStocked(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

type SaleRepoMock struct{ mock.Mock }

func (m *SaleRepoMock) Create(ctx context.Context, sale model.Sale) (model.Sale, error) {
	args := m.Called(ctx, sale)
	s, _ := args.Get(0).(model.Sale)
	return s, args.Error(1)
}

func (m *SaleRepoMock) List(ctx context.Context) ([]model.Sale, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]model.Sale)
	return s, args.Error(1)
}

func (m *SaleRepoMock) DetachProduct(ctx context.Context, productID int64) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *SaleRepoMock) SumQuantity(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SaleRepoMock) ReportRows(ctx context.Context) ([]repo.SaleReportRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.SaleReportRow)
	return rows, args.Error(1)
}

type LotRepoMock struct{ mock.Mock }

func (m *LotRepoMock) Create(ctx context.Context, lot model.Lot) (model.Lot, error) {
	args := m.Called(ctx, lot)
	l, _ := args.Get(0).(model.Lot)
	return l, args.Error(1)
}

func (m *LotRepoMock) FindByID(ctx context.Context, id int64) (model.Lot, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(model.Lot)
	return l, args.Error(1)
}

func (m *LotRepoMock) List(ctx context.Context) ([]model.Lot, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]model.Lot)
	return l, args.Error(1)
}

func (m *LotRepoMock) UpdateShippingCost(ctx context.Context, id int64, shippingCost float64) error {
	return m.Called(ctx, id, shippingCost).Error(0)
}

func (m *LotRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *LotRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) FindByName(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.Category, error) {
	args := m.Called(ctx, ids)
	c, _ := args.Get(0).([]model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *CategoryRepoMock) Rename(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CategoryRepoMock) ReplaceForProduct(ctx context.Context, productID int64, categoryIDs []int64) error {
	return m.Called(ctx, productID, categoryIDs).Error(0)
}

func (m *CategoryRepoMock) DetachProduct(ctx context.Context, productID int64) error {
	return m.Called(ctx, productID).Error(0)
}

// =====================
// Cache mock
// =====================

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Bool(1), args.Error(2)
}

func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *CacheMock) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

// =====================
// FileStorage / Tx doubles
// =====================

var errDisk = errors.New("disk unavailable")

// flakyDisk はローカルディスクの一部の操作だけ失敗させる
type flakyDisk struct {
	*storage.LocalDisk
	failExists bool
	failPut    bool
	failDelete bool
	// 最初の n 回の Exists は既存ファイルがあっても false を返す（別Txとの競合を再現）
	hideExisting int
}

func (d *flakyDisk) Exists(ctx context.Context, path string) (bool, error) {
	if d.failExists {
		return false, errDisk
	}
	if d.hideExisting > 0 {
		d.hideExisting--
		return false, nil
	}
	return d.LocalDisk.Exists(ctx, path)
}

func (d *flakyDisk) Put(ctx context.Context, path string, r io.Reader) error {
	if d.failPut {
		return errDisk
	}
	return d.LocalDisk.Put(ctx, path, r)
}

func (d *flakyDisk) Delete(ctx context.Context, path string) error {
	if d.failDelete {
		return errDisk
	}
	return d.LocalDisk.Delete(ctx, path)
}

// photoInsertFailsTx は本物のTxの中で Photos().Create だけ失敗させる
type photoInsertFailsTx struct {
	repo.TransactionManager
}

func (m photoInsertFailsTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.TransactionManager.WithinTx(ctx, func(r repo.TxRepos) error {
		return fn(photoInsertFailsRepos{r})
	})
}

type photoInsertFailsRepos struct {
	repo.TxRepos
}

func (r photoInsertFailsRepos) Photos() repo.PhotoRepository {
	return photoInsertFails{r.TxRepos.Photos()}
}

type photoInsertFails struct {
	repo.PhotoRepository
}

func (photoInsertFails) Create(context.Context, model.Photo) (model.Photo, error) {
	return model.Photo{}, errors.New("insert photo failed")
}

// =====================
// Helper
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func int64Ptr(v int64) *int64 { return &v }
