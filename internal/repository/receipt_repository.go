package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt model.Receipt) error
	FindByID(ctx context.Context, receiptID string) (model.Receipt, error)

	// 作成順。無ければ空スライス
	ListByEmail(ctx context.Context, email string) ([]model.Receipt, error)

	// 更新後のレシートを返す
	UpdateStatus(ctx context.Context, receiptID string, status model.ReceiptStatus) (model.Receipt, error)
}
