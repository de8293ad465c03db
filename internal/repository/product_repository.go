package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 商品カタログの読み取りだけを約束。
type ProductRepository interface {
	// categoryが空なら全件（シード順）
	List(ctx context.Context, category string) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
}
