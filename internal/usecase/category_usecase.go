package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Lucas16AR/stock-app/internal/domain/model"
	repo "github.com/Lucas16AR/stock-app/internal/repository"
)

type CategoryUsecase struct {
	tx         repo.TransactionManager
	categories repo.CategoryRepository
}

// DI
func NewCategoryUsecase(tx repo.TransactionManager, categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{tx: tx, categories: categories}
}

func normalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewHTTPError(http.StatusBadRequest, "name required")
	}
	if utf8.RuneCountInString(name) > 100 {
		return "", NewHTTPError(http.StatusBadRequest, "name too long")
	}
	return name, nil
}

// 名前順
func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categories.List(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cats, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, name string) (model.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return model.Category{}, err
	}

	_, err = u.categories.FindByName(ctx, name)
	if err == nil {
		return model.Category{}, NewHTTPError(http.StatusConflict, "category already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.categories.Create(ctx, model.Category{Name: name})
	if errors.Is(err, repo.ErrDuplicate) {
		//同時作成
		return model.Category{}, NewHTTPError(http.StatusConflict, "category already exists")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Rename(ctx context.Context, categoryID int64, name string) (model.Category, error) {
	if categoryID <= 0 {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	name, err := normalizeCategoryName(name)
	if err != nil {
		return model.Category{}, err
	}

	var out model.Category
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().FindByID(ctx, categoryID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		if err != nil {
			return err
		}

		other, err := r.Categories().FindByName(ctx, name)
		if err == nil && other.ID != categoryID {
			return NewHTTPError(http.StatusConflict, "category already exists")
		}
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		if err := r.Categories().Rename(ctx, categoryID, name); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return NewHTTPError(http.StatusConflict, "category already exists")
			}
			return err
		}
		c.Name = name
		out = c
		return nil
	})
	if err != nil {
		return model.Category{}, wrapDBError(err)
	}
	return out, nil
}

// 商品からも外す（商品自体は残る）
func (u *CategoryUsecase) Delete(ctx context.Context, categoryID int64) error {
	if categoryID <= 0 {
		return NewHTTPError(http.StatusNotFound, "category not found")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Categories().FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "category not found")
			}
			return err
		}
		return r.Categories().Delete(ctx, categoryID)
	})
	return wrapDBError(err)
}

// 商品のカテゴリを丸ごと置き換える。存在しないIDは無視
func (u *CategoryUsecase) Assign(ctx context.Context, productID int64, categoryIDs []int64) ([]model.Category, error) {
	if productID <= 0 {
		return []model.Category{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	var out []model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			return err
		}
		if err := assignCategories(ctx, r, productID, categoryIDs); err != nil {
			return err
		}
		p, err := r.Products().FindDetail(ctx, productID)
		if err != nil {
			return err
		}
		out = p.Categories
		return nil
	})
	if err != nil {
		return []model.Category{}, wrapDBError(err)
	}
	return out, nil
}

func assignCategories(ctx context.Context, r repo.TxRepos, productID int64, categoryIDs []int64) error {
	ids := make([]int64, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if id > 0 {
			ids = append(ids, id)
		}
	}

	known := []int64{}
	if len(ids) > 0 {
		cats, err := r.Categories().FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, c := range cats {
			known = append(known, c.ID)
		}
	}
	return r.Categories().ReplaceForProduct(ctx, productID, known)
}
