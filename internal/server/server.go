package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Lucas16AR/stock-app/internal/metrics"
	appmw "github.com/Lucas16AR/stock-app/internal/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// localディスクのときだけ /uploads を配信
	UploadDir string
	UploadURL string
	// 写真アップロードを含むリクエストの上限
	BodyLimit string
}

func New(opt Options, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmw.RequestLogger(opt.Logger))
	if opt.Metrics != nil {
		e.Use(appmw.Metrics(opt.Metrics))
	}
	if opt.BodyLimit != "" {
		e.Use(echomw.BodyLimit(opt.BodyLimit))
	}

	if opt.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opt.Gatherer, promhttp.HandlerOpts{})))
	}
	if opt.UploadDir != "" {
		e.Static(opt.UploadURL, opt.UploadDir)
	}

	RegisterRoutes(e, h)
	return e
}

// ctx が終わったら graceful shutdown
func Start(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("server shutting down")
	return e.Shutdown(shutdownCtx)
}
