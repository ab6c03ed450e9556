package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Lucas16AR/stock-app/internal/metrics"

	"github.com/labstack/echo/v4"
)

// ルートのパターン（/products/:id）単位で集計する
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.RequestInFlight.Inc()
			defer m.RequestInFlight.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			labels := []string{c.Request().Method, path, strconv.Itoa(status)}
			m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			m.RequestTotal.WithLabelValues(labels...).Inc()
			return err
		}
	}
}
