package cache

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CachedTxManager はTx内で更新されたカートのキャッシュを、Tx終了後に捨てる。
// commit前に捨てると古い内容が読み直されてしまうため。
type CachedTxManager struct {
	next  repo.TransactionManager
	carts *CachedCartRepository
}

func NewCachedTxManager(next repo.TransactionManager, carts *CachedCartRepository) *CachedTxManager {
	return &CachedTxManager{next: next, carts: carts}
}

var _ repo.TransactionManager = (*CachedTxManager)(nil)

func (tm *CachedTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	touched := &touchedUsers{ids: make(map[string]struct{})}

	err := tm.next.WithinTx(ctx, func(r repo.TxRepos) error {
		return fn(&trackingRepos{
			TxRepos: r,
			carts:   &trackingCarts{CartRepository: r.Carts(), touched: touched},
		})
	})

	for id := range touched.ids {
		tm.carts.invalidate(id)
	}
	return err
}

type touchedUsers struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func (t *touchedUsers) add(userID string) {
	t.mu.Lock()
	t.ids[userID] = struct{}{}
	t.mu.Unlock()
}

type trackingRepos struct {
	repo.TxRepos
	carts repo.CartRepository
}

func (r *trackingRepos) Carts() repo.CartRepository { return r.carts }

type trackingCarts struct {
	repo.CartRepository
	touched *touchedUsers
}

func (c *trackingCarts) AddItem(ctx context.Context, userID string, item model.NewCartItem) (model.Cart, error) {
	c.touched.add(userID)
	return c.CartRepository.AddItem(ctx, userID, item)
}

func (c *trackingCarts) RemoveItem(ctx context.Context, userID string, lineID string) (model.Cart, error) {
	c.touched.add(userID)
	return c.CartRepository.RemoveItem(ctx, userID, lineID)
}

func (c *trackingCarts) UpdateItemQuantity(ctx context.Context, userID string, lineID string, qty int) (model.Cart, error) {
	c.touched.add(userID)
	return c.CartRepository.UpdateItemQuantity(ctx, userID, lineID, qty)
}

func (c *trackingCarts) Clear(ctx context.Context, userID string) (model.Cart, error) {
	c.touched.add(userID)
	return c.CartRepository.Clear(ctx, userID)
}
