package memory

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

// CartStore はプロセス内のmapにカートを持つ。
// 書き込みはmuで1つずつ直列化する。
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*model.Cart

	newID func() string
	now   func() time.Time
}

// DI
func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string]*model.Cart),
		newID: uuid.NewString,
		now:   time.Now,
	}
}

var _ repo.CartRepository = (*CartStore)(nil)

func (s *CartStore) GetOrCreate(ctx context.Context, userID string) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getOrCreateLocked(userID).Clone(), nil
}

func (s *CartStore) Get(ctx context.Context, userID string) (model.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return model.Cart{}, repo.ErrNotFound
	}
	return cart.Clone(), nil
}

func (s *CartStore) AddItem(ctx context.Context, userID string, item model.NewCartItem) (model.Cart, error) {
	if item.Quantity < 1 {
		return model.Cart{}, repo.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(userID)
	now := s.now()

	// 既存ありだったら数量を増やす
	if i, ok := cart.FindByProductID(item.ProductID); ok {
		cart.Items[i].Quantity += item.Quantity
		cart.Items[i].UpdatedAt = now
	} else {
		cart.Items = append(cart.Items, model.CartItem{
			ID:        s.newID(),
			UserID:    userID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
			Position:  len(cart.Items),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	cart.UpdatedAt = now

	return cart.Clone(), nil
}

func (s *CartStore) RemoveItem(ctx context.Context, userID string, lineID string) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return model.Cart{}, repo.ErrNotFound
	}

	if i, found := cart.FindByLineID(lineID); found {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		cart.UpdatedAt = s.now()
	}
	return cart.Clone(), nil
}

func (s *CartStore) UpdateItemQuantity(ctx context.Context, userID string, lineID string, qty int) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return model.Cart{}, repo.ErrNotFound
	}
	i, found := cart.FindByLineID(lineID)
	if !found {
		return model.Cart{}, repo.ErrNotFound
	}

	now := s.now()
	cart.Items[i].Quantity = repo.ClampQuantity(qty)
	cart.Items[i].UpdatedAt = now
	cart.UpdatedAt = now

	return cart.Clone(), nil
}

func (s *CartStore) Clear(ctx context.Context, userID string) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(userID)
	cart.Items = []model.CartItem{}
	cart.UpdatedAt = s.now()

	return cart.Clone(), nil
}

func (s *CartStore) getOrCreateLocked(userID string) *model.Cart {
	if cart, ok := s.carts[userID]; ok {
		return cart
	}

	now := s.now()
	cart := &model.Cart{
		UserID:    userID,
		Items:     []model.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.carts[userID] = cart
	return cart
}
