// Package storage は商品写真ファイルの置き場所（local / s3）を提供する。
package storage

import (
	"context"
	"fmt"

	"github.com/Lucas16AR/stock-app/internal/config"
	repo "github.com/Lucas16AR/stock-app/internal/repository"
)

var (
	_ repo.FileStorage = (*LocalDisk)(nil)
	_ repo.FileStorage = (*S3Disk)(nil)
)

// 設定の STORAGE_DISK に応じたドライバを返す
func New(ctx context.Context, cfg config.Config) (repo.FileStorage, error) {
	switch cfg.StorageDisk {
	case "local":
		return NewLocalDisk(cfg.UploadDir, cfg.UploadURL)
	case "s3":
		return NewS3Disk(ctx, S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Key:      cfg.S3Key,
			Secret:   cfg.S3Secret,
			Endpoint: cfg.S3Endpoint,
			URL:      cfg.S3URL,
			Prefix:   "uploads",
		})
	default:
		return nil, fmt.Errorf("storage: unsupported disk %q", cfg.StorageDisk)
	}
}
