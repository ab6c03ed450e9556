package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/Lucas16AR/stock-app/internal/config"
	"github.com/Lucas16AR/stock-app/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return OpenSQLite(sqliteDSN(cfg.SQLitePath))
	case "postgres":
		return openPostgres(postgresDSN(cfg))
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.DBDriver)
	}
}

// 外部キーは接続ごとに有効化が必要
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

func postgresDSN(cfg config.Config) string {
	// DATABASE_URL があれば最優先で使う
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)
}

func OpenSQLite(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("db: open sqlite: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("db: get sql.DB: %w", err)
	}
	// 書き込みは1本に絞る（database is locked 対策）
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

func openPostgres(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("db: open postgres: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("db: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	return gdb, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// ログはzapに任せる
		Logger: logger.Default.LogMode(logger.Silent),
		// 一意制約違反を gorm.ErrDuplicatedKey にする
		TranslateError: true,
	}
}

// テーブル作成（依存される側から）
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.Lot{},
		&model.Category{},
		&model.Product{},
		&model.ProductCategory{},
		&model.Photo{},
		&model.Sale{},
	); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
