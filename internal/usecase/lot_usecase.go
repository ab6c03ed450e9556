package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"go.uber.org/zap"
)

type LotUsecase struct {
	tx    repo.TransactionManager
	lots  repo.LotRepository
	store *PhotoStore
	cache repo.Cache
	log   *zap.Logger
}

// DI
func NewLotUsecase(tx repo.TransactionManager, lots repo.LotRepository, store *PhotoStore, cache repo.Cache, log *zap.Logger) *LotUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &LotUsecase{tx: tx, lots: lots, store: store, cache: cache, log: log}
}

// 新しい順（商品付き）
func (u *LotUsecase) List(ctx context.Context) ([]model.Lot, error) {
	lots, err := u.lots.List(ctx)
	if err != nil {
		return []model.Lot{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return lots, nil
}

func (u *LotUsecase) Get(ctx context.Context, lotID int64) (model.Lot, error) {
	if lotID <= 0 {
		return model.Lot{}, NewHTTPError(http.StatusNotFound, "lot not found")
	}
	l, err := u.lots.FindByID(ctx, lotID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Lot{}, NewHTTPError(http.StatusNotFound, "lot not found")
	}
	if err != nil {
		return model.Lot{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return l, nil
}

func (u *LotUsecase) Create(ctx context.Context, shippingCost float64) (model.Lot, error) {
	if shippingCost < 0 {
		return model.Lot{}, NewHTTPError(http.StatusBadRequest, "shipping_cost must be >= 0")
	}

	l, err := u.lots.Create(ctx, model.Lot{ShippingCost: shippingCost})
	if err != nil {
		return model.Lot{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	l.Products = []model.Product{}

	invalidateDashboard(ctx, u.cache, u.log)
	u.log.Info("lot created", zap.Int64("lot_id", l.ID))
	return l, nil
}

// 変更できるのは送料だけ
func (u *LotUsecase) Update(ctx context.Context, lotID int64, shippingCost float64) (model.Lot, error) {
	if lotID <= 0 {
		return model.Lot{}, NewHTTPError(http.StatusNotFound, "lot not found")
	}
	if shippingCost < 0 {
		return model.Lot{}, NewHTTPError(http.StatusBadRequest, "shipping_cost must be >= 0")
	}

	err := u.lots.UpdateShippingCost(ctx, lotID, shippingCost)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Lot{}, NewHTTPError(http.StatusNotFound, "lot not found")
	}
	if err != nil {
		return model.Lot{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.Get(ctx, lotID)
}

// ロットの商品と写真もまとめて削除
func (u *LotUsecase) Delete(ctx context.Context, lotID int64) error {
	if lotID <= 0 {
		return NewHTTPError(http.StatusNotFound, "lot not found")
	}

	var paths []string
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Lots().FindByID(ctx, lotID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "lot not found")
			}
			return err
		}

		products, err := r.Products().ListByLotID(ctx, lotID)
		if err != nil {
			return err
		}
		for _, p := range products {
			ps, err := deleteProductCascade(ctx, r, p.ID)
			if err != nil {
				return err
			}
			paths = append(paths, ps...)
		}

		return r.Lots().Delete(ctx, lotID)
	})
	if err != nil {
		return wrapDBError(err)
	}

	u.store.removeFiles(ctx, paths)
	invalidateDashboard(ctx, u.cache, u.log)
	u.log.Info("lot deleted", zap.Int64("lot_id", lotID), zap.Int("photos", len(paths)))
	return nil
}
