package handler

import (
	"net/http"

	"github.com/Lucas16AR/stock-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type LotHandler struct {
	uc *usecase.LotUsecase
}

// DI
func NewLotHandler(uc *usecase.LotUsecase) *LotHandler {
	return &LotHandler{uc: uc}
}

func (h *LotHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/lots", h.list)
	e.POST("/lots", h.create)
	e.GET("/lots/:id", h.detail)
	e.PUT("/lots/:id", h.update)
	e.DELETE("/lots/:id", h.delete)
}

func (h *LotHandler) list(c echo.Context) error {
	lots, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, lots)
}

func (h *LotHandler) detail(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}
	l, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LotHandler) create(c echo.Context) error {
	l, err := h.uc.Create(c.Request().Context(), formFloat(c, "shipping_cost", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LotHandler) update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}
	l, err := h.uc.Update(c.Request().Context(), id, formFloat(c, "shipping_cost", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LotHandler) delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
