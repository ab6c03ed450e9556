package usecase

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	"github.com/Lucas16AR/stock-app/internal/metrics"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"go.uber.org/zap"
)

const PhotoLimitWarning = "only up to 4 photos are allowed per product"

// アップロードされた1ファイル
type PhotoUpload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// 上限を超えたときの扱い
type AttachPolicy int

const (
	// 超えるならまとめて拒否（警告を返す）
	RejectOverflow AttachPolicy = iota
	// 空いている枠の分だけ保存
	FillRemaining
)

type attachResult struct {
	photos  []model.Photo
	written []string
	warning string
	skipped int
}

// 写真ファイルの保存/削除。DBの行はTx内のrepoで扱う
type PhotoStore struct {
	storage repo.FileStorage
	log     *zap.Logger
	metrics *metrics.Metrics
}

// DI
func NewPhotoStore(storage repo.FileStorage, log *zap.Logger, m *metrics.Metrics) *PhotoStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &PhotoStore{storage: storage, log: log, metrics: m}
}

// Tx内で呼ぶ。エラー時も書いたファイル名は written に入る
func (s *PhotoStore) attach(ctx context.Context, r repo.TxRepos, productID int64, uploads []PhotoUpload, policy AttachPolicy) (attachResult, error) {
	var res attachResult

	named := make([]PhotoUpload, 0, len(uploads))
	for _, up := range uploads {
		if up.Filename != "" && up.Open != nil {
			named = append(named, up)
		}
	}
	if len(named) == 0 {
		return res, nil
	}

	current, err := r.Photos().CountByProductID(ctx, productID)
	if err != nil {
		return res, err
	}

	remaining := model.MaxPhotosPerProduct - int(current)
	if policy == RejectOverflow && len(named) > remaining {
		res.warning = PhotoLimitWarning
		res.skipped = len(named)
		return res, nil
	}

	for _, up := range named {
		if !AllowedPhoto(up.Filename) {
			res.skipped++
			continue
		}
		if len(res.photos) >= remaining {
			res.skipped++
			continue
		}

		name, err := s.save(ctx, r, up)
		var fe *fileError
		if errors.As(err, &fe) {
			//このファイルだけ諦める
			s.log.Warn("photo store failed", zap.String("file", up.Filename), zap.String("op", fe.op), zap.Error(fe.err))
			s.countFileError(fe.op)
			res.skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		res.written = append(res.written, name)

		photo, err := r.Photos().Create(ctx, model.Photo{ProductID: productID, Path: name})
		if err != nil {
			return res, err
		}
		res.photos = append(res.photos, photo)
		if s.metrics != nil {
			s.metrics.PhotosStored.Inc()
		}
	}
	return res, nil
}

// ストレージ側の失敗。その写真だけスキップする
type fileError struct {
	op  string
	err error
}

func (e *fileError) Error() string { return "photo file " + e.op + ": " + e.err.Error() }
func (e *fileError) Unwrap() error { return e.err }

// 同名ファイルを別のTxが先に書いたら次の番号で書き直す
const maxPutAttempts = 5

func (s *PhotoStore) save(ctx context.Context, r repo.TxRepos, up PhotoUpload) (string, error) {
	for attempt := 1; ; attempt++ {
		name, err := s.uniqueName(ctx, r, up.Filename)
		if err != nil {
			return "", err
		}
		err = s.put(ctx, name, up)
		if err == nil {
			return name, nil
		}
		if errors.Is(err, repo.ErrFileExists) && attempt < maxPutAttempts {
			continue
		}
		return "", &fileError{op: "put", err: err}
	}
}

func (s *PhotoStore) put(ctx context.Context, name string, up PhotoUpload) error {
	f, err := up.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	return s.storage.Put(ctx, name, f)
}

// ディスクとDBの両方で未使用の名前にする（a.png, a_1.png, a_2.png ...）
func (s *PhotoStore) uniqueName(ctx context.Context, r repo.TxRepos, original string) (string, error) {
	base := storedPhotoName(original)
	name := base
	for i := 1; ; i++ {
		onDisk, err := s.storage.Exists(ctx, name)
		if err != nil {
			return "", &fileError{op: "exists", err: err}
		}
		inDB, err := r.Photos().PathExists(ctx, name)
		if err != nil {
			return "", err
		}
		if !onDisk && !inDB {
			return name, nil
		}
		name = numberedName(base, i)
	}
}

// ロールバック時に書いたファイルを消す
func (s *PhotoStore) discard(ctx context.Context, written []string) {
	s.removeFiles(ctx, written)
}

// commit後のファイル削除。失敗はログだけ
func (s *PhotoStore) removeFiles(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.storage.Delete(ctx, p); err != nil {
			s.log.Warn("photo file delete failed", zap.String("file", p), zap.Error(err))
			s.countFileError("delete")
		}
	}
}

func (s *PhotoStore) countFileError(op string) {
	if s.metrics != nil {
		s.metrics.PhotoFileErrors.WithLabelValues(op).Inc()
	}
}

func (s *PhotoStore) fillURLs(photos []model.Photo) {
	if s == nil {
		return
	}
	for i := range photos {
		photos[i].URL = s.storage.URL(photos[i].Path)
	}
}

func (s *PhotoStore) fillProductURLs(items []model.Product) {
	for i := range items {
		s.fillURLs(items[i].Photos)
	}
}

// 写真の追加/削除（商品編集画面から）
type PhotoUsecase struct {
	tx    repo.TransactionManager
	store *PhotoStore
	log   *zap.Logger
}

// DI
func NewPhotoUsecase(tx repo.TransactionManager, store *PhotoStore, log *zap.Logger) *PhotoUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &PhotoUsecase{tx: tx, store: store, log: log}
}

type AttachPhotosOutput struct {
	Photos        []model.Photo `json:"photos"`
	Warning       string        `json:"warning,omitempty"`
	SkippedPhotos int           `json:"skipped_photos"`
}

// 既存商品に写真を追加。上限を超えるならまとめて拒否
func (u *PhotoUsecase) AttachToProduct(ctx context.Context, productID int64, uploads []PhotoUpload) (AttachPhotosOutput, error) {
	if productID <= 0 {
		return AttachPhotosOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	var out AttachPhotosOutput
	var written []string
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			return err
		}

		res, err := u.store.attach(ctx, r, productID, uploads, RejectOverflow)
		written = res.written
		if err != nil {
			return err
		}
		out.Warning = res.warning
		out.SkippedPhotos = res.skipped

		photos, err := r.Photos().ListByProductID(ctx, productID)
		if err != nil {
			return err
		}
		out.Photos = photos
		return nil
	})
	if err != nil {
		u.store.discard(ctx, written)
		return AttachPhotosOutput{}, wrapDBError(err)
	}

	u.store.fillURLs(out.Photos)
	return out, nil
}

// 行を消してからファイルを消す
func (u *PhotoUsecase) Remove(ctx context.Context, photoID int64) (model.Photo, error) {
	if photoID <= 0 {
		return model.Photo{}, NewHTTPError(http.StatusNotFound, "photo not found")
	}

	var photo model.Photo
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Photos().FindByID(ctx, photoID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "photo not found")
			}
			return err
		}
		if err := r.Photos().Delete(ctx, photoID); err != nil {
			return err
		}
		photo = p
		return nil
	})
	if err != nil {
		return model.Photo{}, wrapDBError(err)
	}

	u.store.removeFiles(ctx, []string{photo.Path})
	u.log.Info("photo removed", zap.Int64("photo_id", photo.ID), zap.Int64("product_id", photo.ProductID))
	return photo, nil
}
