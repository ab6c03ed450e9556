package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string // サーバーポート（8080）
	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error

	DBDriver    string // sqlite/postgres
	DatabaseURL string // 指定があれば最優先
	SQLitePath  string // sqliteのファイル

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	StorageDisk string // local/s3
	UploadDir   string // localの保存先
	UploadURL   string // localの公開URLプレフィックス

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string // MinIOなど
	S3URL      string

	RedisAddr         string // 空ならキャッシュなし
	RedisPassword     string
	RedisDB           int
	DashboardCacheTTL time.Duration
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiOr("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := atoiOr("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	ttl, err := durationOr("DASHBOARD_CACHE_TTL", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:     getenv("PORT", "8080"),
		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DBDriver:    getenv("DB_DRIVER", "sqlite"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenv("SQLITE_PATH", "inventario.db"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		StorageDisk: getenv("STORAGE_DISK", "local"),
		UploadDir:   getenv("UPLOAD_DIR", "static/uploads"),
		UploadURL:   getenv("UPLOAD_URL", "/uploads"),

		S3Bucket:   os.Getenv("S3_BUCKET"),
		S3Region:   getenv("S3_REGION", "us-east-1"),
		S3Key:      os.Getenv("S3_KEY"),
		S3Secret:   os.Getenv("S3_SECRET"),
		S3Endpoint: os.Getenv("S3_ENDPOINT"),
		S3URL:      os.Getenv("S3_URL"),

		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		DashboardCacheTTL: ttl,
	}

	//必須チェック
	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			if cfg.PostgresUser == "" {
				return Config{}, fmt.Errorf("POSTGRES_USER is required")
			}
			if cfg.PostgresPassword == "" {
				return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
			}
			if cfg.PostgresDB == "" {
				return Config{}, fmt.Errorf("POSTGRES_DB is required")
			}
		}
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be sqlite or postgres")
	}

	switch cfg.StorageDisk {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" {
			return Config{}, fmt.Errorf("S3_BUCKET is required")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_DISK must be local or s3")
	}

	return cfg, nil
}

// 本番かどうか
func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationOr(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
