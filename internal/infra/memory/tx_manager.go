package memory

import (
	"context"
	"sync"

	repo "storefront/internal/repository"
)

type txRepos struct {
	carts    repo.CartRepository
	receipts repo.ReceiptRepository
}

func (r *txRepos) Carts() repo.CartRepository       { return r.carts }
func (r *txRepos) Receipts() repo.ReceiptRepository { return r.receipts }

// TxManager はトランザクション本体を1つずつ直列に実行する。
// メモリ実装なのでロールバックはしない。
type TxManager struct {
	mu    sync.Mutex
	repos *txRepos
}

func NewTxManager(carts repo.CartRepository, receipts repo.ReceiptRepository) *TxManager {
	return &TxManager{repos: &txRepos{carts: carts, receipts: receipts}}
}

func (tm *TxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(tm.repos)
}
