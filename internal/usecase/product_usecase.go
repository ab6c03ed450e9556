package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"go.uber.org/zap"
)

type ProductUsecase struct {
	tx       repo.TransactionManager
	products repo.ProductRepository
	store    *PhotoStore
	cache    repo.Cache
	log      *zap.Logger
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	store *PhotoStore,
	cache repo.Cache,
	log *zap.Logger,
) *ProductUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductUsecase{
		tx:       tx,
		products: products,
		store:    store,
		cache:    cache,
		log:      log,
	}
}

// 作成/編集フォームの入力
type ProductInput struct {
	Name          string
	Quantity      int64
	PurchasePrice float64
	ShippingUnit  float64
	ExtraCost     float64
	Margin        float64
	LotID         *int64
	CategoryIDs   []int64
	Photos        []PhotoUpload
}

type ProductOutput struct {
	Product       model.Product `json:"product"`
	Warning       string        `json:"warning,omitempty"`
	SkippedPhotos int           `json:"skipped_photos"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) > 150 {
		return NewHTTPError(http.StatusBadRequest, "name too long")
	}
	if in.Quantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}
	if in.PurchasePrice < 0 {
		return NewHTTPError(http.StatusBadRequest, "purchase_price must be >= 0")
	}
	if in.ShippingUnit < 0 {
		return NewHTTPError(http.StatusBadRequest, "shipping_unit must be >= 0")
	}
	if in.ExtraCost < 0 {
		return NewHTTPError(http.StatusBadRequest, "extra_cost must be >= 0")
	}
	return nil
}

func (in ProductInput) toModel(id int64) model.Product {
	return model.Product{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
		ShippingUnit:  in.ShippingUnit,
		ExtraCost:     in.ExtraCost,
		Margin:        in.Margin,
		LotID:         in.LotID,
	}
}

func (u *ProductUsecase) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	items, err := u.products.List(ctx, q)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	u.store.fillProductURLs(items)
	return items, nil
}

// カテゴリ・写真・販売履歴付き
func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	p, err := u.products.FindDetail(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	u.store.fillURLs(p.Photos)
	return p, nil
}

// 写真が上限を超える場合は写真だけ保存せず警告を返す（商品は作る）
func (u *ProductUsecase) Create(ctx context.Context, in ProductInput) (ProductOutput, error) {
	if err := in.validate(); err != nil {
		return ProductOutput{}, err
	}

	var out ProductOutput
	var written []string
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := ensureLot(ctx, r, in.LotID); err != nil {
			return err
		}

		p, err := r.Products().Create(ctx, in.toModel(0))
		if err != nil {
			return err
		}
		if err := assignCategories(ctx, r, p.ID, in.CategoryIDs); err != nil {
			return err
		}

		res, err := u.store.attach(ctx, r, p.ID, in.Photos, RejectOverflow)
		written = res.written
		if err != nil {
			return err
		}
		out.Warning = res.warning
		out.SkippedPhotos = res.skipped

		out.Product, err = r.Products().FindDetail(ctx, p.ID)
		return err
	})
	if err != nil {
		u.store.discard(ctx, written)
		return ProductOutput{}, wrapDBError(err)
	}

	u.store.fillURLs(out.Product.Photos)
	invalidateDashboard(ctx, u.cache, u.log)
	u.log.Info("product created", zap.Int64("product_id", out.Product.ID), zap.Int("photos", len(out.Product.Photos)))
	return out, nil
}

// ロット画面からの追加
func (u *ProductUsecase) CreateInLot(ctx context.Context, lotID int64, in ProductInput) (ProductOutput, error) {
	if lotID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "lot not found")
	}
	in.LotID = &lotID
	return u.Create(ctx, in)
}

// 全項目を上書き。写真は空き枠の分だけ追加
func (u *ProductUsecase) Update(ctx context.Context, productID int64, in ProductInput) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err := in.validate(); err != nil {
		return ProductOutput{}, err
	}

	var out ProductOutput
	var written []string
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			return err
		}
		if err := ensureLot(ctx, r, in.LotID); err != nil {
			return err
		}

		if err := r.Products().Update(ctx, in.toModel(productID)); err != nil {
			return err
		}
		if err := assignCategories(ctx, r, productID, in.CategoryIDs); err != nil {
			return err
		}

		res, err := u.store.attach(ctx, r, productID, in.Photos, FillRemaining)
		written = res.written
		if err != nil {
			return err
		}
		out.SkippedPhotos = res.skipped

		out.Product, err = r.Products().FindDetail(ctx, productID)
		return err
	})
	if err != nil {
		u.store.discard(ctx, written)
		return ProductOutput{}, wrapDBError(err)
	}

	u.store.fillURLs(out.Product.Photos)
	invalidateDashboard(ctx, u.cache, u.log)
	return out, nil
}

// 写真の行と販売の参照も片付ける。ファイルはcommit後に消す
func (u *ProductUsecase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}

	var paths []string
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			return err
		}

		var err error
		paths, err = deleteProductCascade(ctx, r, productID)
		return err
	})
	if err != nil {
		return wrapDBError(err)
	}

	u.store.removeFiles(ctx, paths)
	invalidateDashboard(ctx, u.cache, u.log)
	u.log.Info("product deleted", zap.Int64("product_id", productID), zap.Int("photos", len(paths)))
	return nil
}

// 商品1件分の削除。消した写真のファイル名を返す
func deleteProductCascade(ctx context.Context, r repo.TxRepos, productID int64) ([]string, error) {
	photos, err := r.Photos().ListByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(photos))
	for _, ph := range photos {
		paths = append(paths, ph.Path)
	}

	if err := r.Photos().DeleteByProductID(ctx, productID); err != nil {
		return nil, err
	}
	if err := r.Sales().DetachProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := r.Categories().DetachProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := r.Products().Delete(ctx, productID); err != nil {
		return nil, err
	}
	return paths, nil
}

func ensureLot(ctx context.Context, r repo.TxRepos, lotID *int64) error {
	if lotID == nil {
		return nil
	}
	if _, err := r.Lots().FindByID(ctx, *lotID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "lot not found")
		}
		return err
	}
	return nil
}
