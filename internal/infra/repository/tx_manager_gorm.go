package repository

import (
	"context"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	carts    repo.CartRepository
	receipts repo.ReceiptRepository
}

func (r *txReposGorm) Carts() repo.CartRepository       { return r.carts }
func (r *txReposGorm) Receipts() repo.ReceiptRepository { return r.receipts }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			carts:    NewCartGormRepository(tx),
			receipts: NewReceiptGormRepository(tx),
		}
		return fn(r)
	})
}
