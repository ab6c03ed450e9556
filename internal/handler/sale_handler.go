package handler

import (
	"net/http"

	"github.com/Lucas16AR/stock-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SaleHandler struct {
	uc *usecase.SaleUsecase
}

// DI
func NewSaleHandler(uc *usecase.SaleUsecase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

func (h *SaleHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/sales", h.list)
	e.POST("/sales", h.record)
}

func (h *SaleHandler) list(c echo.Context) error {
	page, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *SaleHandler) record(c echo.Context) error {
	sale, err := h.uc.Record(c.Request().Context(), usecase.SaleInput{
		ProductID: formInt(c, "product_id", 0),
		Quantity:  formInt(c, "quantity", 0),
		UnitPrice: formFloat(c, "unit_price", 0),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, sale)
}
