package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	"github.com/Lucas16AR/stock-app/internal/infra/storage"
	"github.com/Lucas16AR/stock-app/internal/metrics"
	repo "github.com/Lucas16AR/stock-app/internal/repository"
	"github.com/Lucas16AR/stock-app/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDisk(d *flakyDisk) func(*storage.LocalDisk) repo.FileStorage {
	return func(local *storage.LocalDisk) repo.FileStorage {
		d.LocalDisk = local
		return d
	}
}

func TestPhotoStorage_LookupFailureSkipsPhoto(t *testing.T) {
	m := metrics.New()
	disk := &flakyDisk{failExists: true}
	a := newAppWith(t, appOptions{disk: withDisk(disk), metrics: m})
	ctx := context.Background()

	out, err := a.products.Create(ctx, usecase.ProductInput{Name: "Lamp", Quantity: 3, Photos: uploads("a.png")})
	require.NoError(t, err)
	assert.NotZero(t, out.Product.ID)
	assert.Empty(t, out.Product.Photos)
	assert.Equal(t, 1, out.SkippedPhotos)
	assert.Empty(t, a.files(t))

	got, err := a.products.Get(ctx, out.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Quantity)

	att, err := a.photos.AttachToProduct(ctx, out.Product.ID, uploads("b.png"))
	require.NoError(t, err)
	assert.Empty(t, att.Photos)
	assert.Equal(t, 1, att.SkippedPhotos)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PhotoFileErrors.WithLabelValues("exists")))
}

func TestPhotoStorage_WriteFailureSkipsPhoto(t *testing.T) {
	m := metrics.New()
	disk := &flakyDisk{failPut: true}
	a := newAppWith(t, appOptions{disk: withDisk(disk), metrics: m})
	ctx := context.Background()

	out, err := a.products.Create(ctx, usecase.ProductInput{Name: "Vase", Quantity: 1, Photos: uploads("a.png", "b.jpg")})
	require.NoError(t, err)
	assert.Empty(t, out.Product.Photos)
	assert.Equal(t, 2, out.SkippedPhotos)
	assert.Empty(t, a.files(t))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PhotoFileErrors.WithLabelValues("put")))

	// 書けるようになれば同じ商品に追加できる
	disk.failPut = false
	upd, err := a.products.Update(ctx, out.Product.ID, usecase.ProductInput{Name: "Vase", Quantity: 1, Photos: uploads("a.png")})
	require.NoError(t, err)
	require.Len(t, upd.Product.Photos, 1)
	assert.Equal(t, []string{"a.png"}, a.files(t))
}

func TestPhotoStorage_DeleteFailureStillDeletesRows(t *testing.T) {
	m := metrics.New()
	disk := &flakyDisk{}
	a := newAppWith(t, appOptions{disk: withDisk(disk), metrics: m})
	ctx := context.Background()

	lot, err := a.lots.Create(ctx, 10)
	require.NoError(t, err)
	inLot, err := a.products.CreateInLot(ctx, lot.ID, usecase.ProductInput{Name: "Cup", Photos: uploads("cup.png")})
	require.NoError(t, err)
	solo, err := a.products.Create(ctx, usecase.ProductInput{Name: "Mug", Photos: uploads("mug.png", "mug2.png")})
	require.NoError(t, err)
	require.Len(t, solo.Product.Photos, 2)

	disk.failDelete = true

	_, err = a.photos.Remove(ctx, solo.Product.Photos[0].ID)
	require.NoError(t, err)
	require.NoError(t, a.products.Delete(ctx, solo.Product.ID))
	require.NoError(t, a.lots.Delete(ctx, lot.ID))

	var nProducts, nPhotos int64
	require.NoError(t, a.db.Model(&model.Product{}).Count(&nProducts).Error)
	require.NoError(t, a.db.Model(&model.Photo{}).Count(&nPhotos).Error)
	assert.Zero(t, nProducts)
	assert.Zero(t, nPhotos)

	_, err = a.products.Get(ctx, inLot.Product.ID)
	assertErrContains(t, err, "product not found")

	// ファイルは残るが処理は成功している
	assert.ElementsMatch(t, []string{"cup.png", "mug.png", "mug2.png"}, a.files(t))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PhotoFileErrors.WithLabelValues("delete")))
}

func TestPhotoStorage_RollbackRemovesWrittenFiles(t *testing.T) {
	a := newAppWith(t, appOptions{
		tx: func(tm repo.TransactionManager) repo.TransactionManager {
			return photoInsertFailsTx{tm}
		},
	})
	ctx := context.Background()

	_, err := a.products.Create(ctx, usecase.ProductInput{Name: "Desk", Quantity: 2, Photos: uploads("desk.png")})
	assertErrContains(t, err, "db error")
	assert.Empty(t, a.files(t))

	var n int64
	require.NoError(t, a.db.Model(&model.Product{}).Count(&n).Error)
	assert.Zero(t, n)

	// 写真なしなら作れる。更新で写真を足すとロールバックされる
	out, err := a.products.Create(ctx, usecase.ProductInput{Name: "Desk", Quantity: 2})
	require.NoError(t, err)

	_, err = a.products.Update(ctx, out.Product.ID, usecase.ProductInput{Name: "Desk v2", Quantity: 9, Photos: uploads("desk.png")})
	assertErrContains(t, err, "db error")
	assert.Empty(t, a.files(t))

	got, err := a.products.Get(ctx, out.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk", got.Name)
	assert.Equal(t, int64(2), got.Quantity)
}

func TestPhotoStorage_NameTakenDuringWriteUsesNextSuffix(t *testing.T) {
	disk := &flakyDisk{hideExisting: 1}
	a := newAppWith(t, appOptions{disk: withDisk(disk)})
	ctx := context.Background()

	// 別の商品の保存が先に同じ名前で書いた状態
	require.NoError(t, os.WriteFile(filepath.Join(a.uploadDir, "a.png"), []byte("other"), 0o644))

	out, err := a.products.Create(ctx, usecase.ProductInput{Name: "Clock", Photos: uploads("a.png")})
	require.NoError(t, err)
	require.Len(t, out.Product.Photos, 1)
	assert.Equal(t, "a_1.png", out.Product.Photos[0].Path)
	assert.Equal(t, 0, out.SkippedPhotos)

	b, err := os.ReadFile(filepath.Join(a.uploadDir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "other", string(b))
}

func TestPhotoURLs_FilledOnSalesPageAndStockReport(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	_, err := a.products.Create(ctx, usecase.ProductInput{Name: "Fan", Quantity: 2, Photos: uploads("fan.png")})
	require.NoError(t, err)

	page, err := a.sales.List(ctx)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Len(t, page.Products[0].Photos, 1)
	assert.Equal(t, "/uploads/fan.png", page.Products[0].Photos[0].URL)

	report, err := a.dashboard.StockReport(ctx)
	require.NoError(t, err)
	require.Len(t, report, 1)
	require.Len(t, report[0].Photos, 1)
	assert.Equal(t, "/uploads/fan.png", report[0].Photos[0].URL)
}
