package handler

import (
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Lucas16AR/stock-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// フォームの数値は読めなければ既定値にする
func formFloat(c echo.Context, key string, def float64) float64 {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func formInt(c echo.Context, key string, def int64) int64 {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return i
}

// 空や不正値は「指定なし」
func formOptionalID(c echo.Context, key string) *int64 {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// 複数指定（category_ids=1&category_ids=2）。読めないIDは飛ばす
func formIDs(c echo.Context, key string) []int64 {
	params, err := c.FormParams()
	if err != nil {
		params = url.Values{}
	}
	ids := []int64{}
	for _, v := range params[key] {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// multipart のときだけファイルを読む
func formPhotos(c echo.Context, key string) []usecase.PhotoUpload {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		return nil
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}

	ups := make([]usecase.PhotoUpload, 0, len(form.File[key]))
	for _, fh := range form.File[key] {
		fh := fh
		ups = append(ups, usecase.PhotoUpload{
			Filename: fh.Filename,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return ups
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
