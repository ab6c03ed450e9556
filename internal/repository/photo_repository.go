package repository

import (
	"context"
	"errors"
	"io"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo model.Photo) (model.Photo, error)
	FindByID(ctx context.Context, id int64) (model.Photo, error)
	ListByProductID(ctx context.Context, productID int64) ([]model.Photo, error)
	CountByProductID(ctx context.Context, productID int64) (int64, error)
	PathExists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, id int64) error
	DeleteByProductID(ctx context.Context, productID int64) error
}

// Put 先に同名のファイルがある
var ErrFileExists = errors.New("file already exists")

// 写真ファイルの置き場所（ローカルディスク / S3）
// トランザクションの外側なので失敗しても呼び出し側で握りつぶす
type FileStorage interface {
	// 上書きはしない。既にあれば ErrFileExists
	Put(ctx context.Context, path string, r io.Reader) error
	Exists(ctx context.Context, path string) (bool, error)
	// 存在しない場合は nil
	Delete(ctx context.Context, path string) error
	URL(path string) string
}
