package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Lucas16AR/stock-app/internal/handler"
	"github.com/Lucas16AR/stock-app/internal/infra/cache"
	"github.com/Lucas16AR/stock-app/internal/infra/db"
	infraRepo "github.com/Lucas16AR/stock-app/internal/infra/repository"
	"github.com/Lucas16AR/stock-app/internal/infra/storage"
	"github.com/Lucas16AR/stock-app/internal/metrics"
	"github.com/Lucas16AR/stock-app/internal/server"
	"github.com/Lucas16AR/stock-app/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	log.Info("database ready", zap.String("driver", cfg.DBDriver))

	disk, err := storage.New(ctx, cfg)
	if err != nil {
		return err
	}
	dashCache, closeCache, err := cache.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	reg := prometheus.NewRegistry()
	m := metrics.New()
	if err := m.Register(reg); err != nil {
		return err
	}

	//Repository（GORM実装）生成
	txm := infraRepo.NewTxManagerGorm(gormDB)
	lotRepo := infraRepo.NewLotGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	saleRepo := infraRepo.NewSaleGormRepository(gormDB)

	//Usecase生成
	store := usecase.NewPhotoStore(disk, log, m)
	lotUC := usecase.NewLotUsecase(txm, lotRepo, store, dashCache, log)
	categoryUC := usecase.NewCategoryUsecase(txm, categoryRepo)
	productUC := usecase.NewProductUsecase(txm, productRepo, store, dashCache, log)
	photoUC := usecase.NewPhotoUsecase(txm, store, log)
	saleUC := usecase.NewSaleUsecase(txm, saleRepo, productRepo, store, dashCache, m, log)
	dashboardUC := usecase.NewDashboardUsecase(saleRepo, inventoryRepo, lotRepo, productRepo, store, dashCache, cache.TTL(dashCache, cfg.DashboardCacheTTL), m, log)

	//Handler生成
	h := server.Handlers{
		Dashboard:  handler.NewDashboardHandler(dashboardUC),
		Lots:       handler.NewLotHandler(lotUC),
		Categories: handler.NewCategoryHandler(categoryUC),
		Products:   handler.NewProductHandler(productUC, categoryUC),
		Photos:     handler.NewPhotoHandler(photoUC),
		Sales:      handler.NewSaleHandler(saleUC),
	}

	opt := server.Options{
		Logger:    log,
		Metrics:   m,
		Gatherer:  reg,
		BodyLimit: "32M",
	}
	if local, ok := disk.(*storage.LocalDisk); ok {
		opt.UploadDir = local.Root()
		opt.UploadURL = cfg.UploadURL
	}

	e := server.New(opt, h)
	return server.Start(ctx, e, listenAddr(cfg.Port), log)
}

// "8080" でも ":8080" でもよい
func listenAddr(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
