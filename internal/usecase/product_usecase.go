package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// 商品一覧（categoryで絞り込み）
func (u *ProductUsecase) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return []model.Product{}, NewInternalError(err)
	}
	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, strings.TrimSpace(productID))
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, ErrMsgProductNotFound)
	}
	if err != nil {
		return model.Product{}, NewInternalError(err)
	}
	return p, nil
}
