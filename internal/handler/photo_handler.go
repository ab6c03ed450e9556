package handler

import (
	"net/http"

	"github.com/Lucas16AR/stock-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PhotoHandler struct {
	uc *usecase.PhotoUsecase
}

// DI
func NewPhotoHandler(uc *usecase.PhotoUsecase) *PhotoHandler {
	return &PhotoHandler{uc: uc}
}

func (h *PhotoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/products/:id/photos", h.attach)
	e.DELETE("/photos/:id", h.remove)
}

func (h *PhotoHandler) attach(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.AttachToProduct(c.Request().Context(), id, formPhotos(c, "photos"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 削除した写真の商品IDを返す（編集画面に戻るため）
func (h *PhotoHandler) remove(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}
	p, err := h.uc.Remove(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"product_id": p.ProductID})
}
