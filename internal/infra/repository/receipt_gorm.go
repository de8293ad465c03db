package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ReceiptGormRepository struct {
	db *gorm.DB
}

func NewReceiptGormRepository(db *gorm.DB) *ReceiptGormRepository {
	return &ReceiptGormRepository{db: db}
}

var _ repo.ReceiptRepository = (*ReceiptGormRepository)(nil)

// レシートと明細をまとめて保存
func (r *ReceiptGormRepository) Create(ctx context.Context, receipt model.Receipt) error {
	rec := receipt.Clone()
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ReceiptGormRepository) FindByID(ctx context.Context, receiptID string) (model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items", orderByID).
		Where("id = ?", receiptID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Receipt{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Receipt{}, err
	}
	return rec, nil
}

func (r *ReceiptGormRepository) ListByEmail(ctx context.Context, email string) ([]model.Receipt, error) {
	var items []model.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items", orderByID).
		Where("LOWER(email) = LOWER(?)", email).
		Order("created_at asc").
		Order("seq asc").
		Find(&items).Error
	if err != nil {
		return []model.Receipt{}, err
	}
	if items == nil {
		items = []model.Receipt{}
	}
	return items, nil
}

func (r *ReceiptGormRepository) UpdateStatus(ctx context.Context, receiptID string, status model.ReceiptStatus) (model.Receipt, error) {
	res := r.db.WithContext(ctx).Model(&model.Receipt{}).
		Where("id = ?", receiptID).
		Update("status", status)

	if res.Error != nil {
		return model.Receipt{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Receipt{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, receiptID)
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}
