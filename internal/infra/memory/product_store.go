package memory

import (
	"context"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// ProductStore は起動時のシードだけを持つ読み取り専用カタログ。
type ProductStore struct {
	products []model.Product
	byID     map[string]int
}

// 商品リストからカタログを作る（順番は保持）
func NewProductStore(products []model.Product) *ProductStore {
	s := &ProductStore{
		products: make([]model.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(s.products, products)
	for i, p := range s.products {
		s.byID[p.ID] = i
	}
	return s
}

var _ repo.ProductRepository = (*ProductStore)(nil)

func (s *ProductStore) List(ctx context.Context, category string) ([]model.Product, error) {
	category = strings.TrimSpace(category)

	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *ProductStore) FindByID(ctx context.Context, id string) (model.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return s.products[i], nil
}

// SeedProducts は固定の初期カタログ。
func SeedProducts() []model.Product {
	return []model.Product{
		{
			ID:          "p1",
			Name:        "Classic Cotton T-Shirt",
			Price:       19.99,
			Description: "Soft everyday tee in 100% organic cotton.",
			ImageURL:    "/images/products/tshirt.jpg",
			Category:    "clothing",
			Stock:       120,
		},
		{
			ID:          "p2",
			Name:        "Slim Fit Denim Jeans",
			Price:       49.99,
			Description: "Stretch denim with a modern slim cut.",
			ImageURL:    "/images/products/jeans.jpg",
			Category:    "clothing",
			Stock:       80,
		},
		{
			ID:          "p3",
			Name:        "Wireless Headphones",
			Price:       89.99,
			Description: "Over-ear headphones with 30 hours of battery life.",
			ImageURL:    "/images/products/headphones.jpg",
			Category:    "electronics",
			Stock:       45,
		},
		{
			ID:          "p4",
			Name:        "Smart Watch",
			Price:       149.99,
			Description: "Fitness tracking, notifications and heart-rate monitor.",
			ImageURL:    "/images/products/watch.jpg",
			Category:    "electronics",
			Stock:       30,
		},
		{
			ID:          "p5",
			Name:        "Leather Backpack",
			Price:       79.5,
			Description: "Full-grain leather backpack with padded laptop sleeve.",
			ImageURL:    "/images/products/backpack.jpg",
			Category:    "accessories",
			Stock:       25,
		},
		{
			ID:          "p6",
			Name:        "Ceramic Coffee Mug",
			Price:       12.25,
			Description: "350ml stoneware mug, dishwasher safe.",
			ImageURL:    "/images/products/mug.jpg",
			Category:    "home",
			Stock:       200,
		},
	}
}
