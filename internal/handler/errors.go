package handler

import (
	"net/http"

	"github.com/Lucas16AR/stock-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type InsufficientStockResponse struct {
	Error     string `json:"error"`
	Available int64  `json:"available"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ie, ok := usecase.AsInsufficientStock(err); ok {
		return c.JSON(http.StatusConflict, InsufficientStockResponse{
			Error:     "insufficient stock",
			Available: ie.Available,
		})
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
}
