package handler

import (
	"net/http"

	"github.com/Lucas16AR/stock-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

// DI
func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.home)
	e.GET("/dashboard", h.summary)
	e.GET("/stock", h.stock)
	e.GET("/healthz", healthz)
}

func (h *DashboardHandler) home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *DashboardHandler) summary(c echo.Context) error {
	s, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *DashboardHandler) stock(c echo.Context) error {
	items, err := h.uc.StockReport(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
