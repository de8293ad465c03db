package memory

import (
	"context"
	"strings"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string // 小文字email -> id
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

var _ repo.UserRepository = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return repo.ErrDuplicate
	}
	s.byID[user.ID] = user
	s.byEmail[key] = user.ID
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, userID string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[userID]
	if !ok {
		return model.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return model.User{}, repo.ErrNotFound
	}
	return s.byID[id], nil
}
