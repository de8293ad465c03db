package memory

import (
	"context"
	"strings"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ReceiptStore struct {
	mu       sync.RWMutex
	receipts map[string]*model.Receipt
	order    []string // 作成順のID
}

func NewReceiptStore() *ReceiptStore {
	return &ReceiptStore{
		receipts: make(map[string]*model.Receipt),
	}
}

var _ repo.ReceiptRepository = (*ReceiptStore)(nil)

func (s *ReceiptStore) Create(ctx context.Context, receipt model.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.receipts[receipt.ID]; exists {
		return repo.ErrDuplicate
	}

	r := receipt.Clone()
	s.receipts[r.ID] = &r
	s.order = append(s.order, r.ID)
	return nil
}

func (s *ReceiptStore) FindByID(ctx context.Context, receiptID string) (model.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.receipts[receiptID]
	if !ok {
		return model.Receipt{}, repo.ErrNotFound
	}
	return r.Clone(), nil
}

func (s *ReceiptStore) ListByEmail(ctx context.Context, email string) ([]model.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Receipt{}
	for _, id := range s.order {
		r := s.receipts[id]
		if strings.EqualFold(r.Email, email) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (s *ReceiptStore) UpdateStatus(ctx context.Context, receiptID string, status model.ReceiptStatus) (model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.receipts[receiptID]
	if !ok {
		return model.Receipt{}, repo.ErrNotFound
	}
	r.Status = status
	return r.Clone(), nil
}
