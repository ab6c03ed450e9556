package handler

import (
	"net/http"
	"strconv"

	repo "github.com/Lucas16AR/stock-app/internal/repository"
	"github.com/Lucas16AR/stock-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 新規作成時のマージン既定値
const defaultMargin = 0.5

type ProductHandler struct {
	uc  *usecase.ProductUsecase
	cat *usecase.CategoryUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, cat *usecase.CategoryUsecase) *ProductHandler {
	return &ProductHandler{uc: uc, cat: cat}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.POST("/products", h.create)
	e.GET("/products/:id", h.detail)
	e.PUT("/products/:id", h.update)
	e.DELETE("/products/:id", h.delete)
	e.PUT("/products/:id/categories", h.assignCategories)
	e.POST("/lots/:id/products", h.createInLot)
}

func productInput(c echo.Context) usecase.ProductInput {
	return usecase.ProductInput{
		Name:          c.FormValue("name"),
		Quantity:      formInt(c, "quantity", 0),
		PurchasePrice: formFloat(c, "purchase_price", 0),
		ShippingUnit:  formFloat(c, "shipping_unit", 0),
		ExtraCost:     formFloat(c, "extra_cost", 0),
		Margin:        formFloat(c, "margin", defaultMargin),
		LotID:         formOptionalID(c, "lot_id"),
		CategoryIDs:   formIDs(c, "category_ids"),
		Photos:        formPhotos(c, "photos"),
	}
}

func (h *ProductHandler) list(c echo.Context) error {
	var q repo.ProductListQuery
	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category_id"})
		}
		q.CategoryID = &id
	}
	if v := c.QueryParam("in_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid in_stock"})
		}
		q.InStockOnly = b
	}

	items, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}

	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) create(c echo.Context) error {
	out, err := h.uc.Create(c.Request().Context(), productInput(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) createInLot(c echo.Context) error {
	lotID, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}

	out, err := h.uc.CreateInLot(c.Request().Context(), lotID, productInput(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}

	out, err := h.uc.Update(c.Request().Context(), id, productInput(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) assignCategories(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return invalidID(c)
	}

	cats, err := h.cat.Assign(c.Request().Context(), id, formIDs(c, "category_ids"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}
