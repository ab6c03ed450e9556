package server

import (
	"github.com/Lucas16AR/stock-app/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Dashboard  *handler.DashboardHandler
	Lots       *handler.LotHandler
	Categories *handler.CategoryHandler
	Products   *handler.ProductHandler
	Photos     *handler.PhotoHandler
	Sales      *handler.SaleHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	h.Dashboard.RegisterRoutes(e)
	h.Lots.RegisterRoutes(e)
	h.Categories.RegisterRoutes(e)
	h.Products.RegisterRoutes(e)
	h.Photos.RegisterRoutes(e)
	h.Sales.RegisterRoutes(e)
}
