package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

var _ repo.CartRepository = (*CartGormRepository)(nil)

// ユーザーのカートを取得し、無ければ作成
func (r *CartGormRepository) GetOrCreate(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCart(tx, userID, time.Now()); err != nil {
			return err
		}

		loaded, err := loadCart(tx, userID)
		if err != nil {
			return err
		}
		cart = loaded
		return nil
	})
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// ユーザーのカートを取得（作らない）
func (r *CartGormRepository) Get(ctx context.Context, userID string) (model.Cart, error) {
	return loadCart(r.db.WithContext(ctx), userID)
}

// 同一商品は数量加算
func (r *CartGormRepository) AddItem(ctx context.Context, userID string, item model.NewCartItem) (model.Cart, error) {
	if item.Quantity < 1 {
		return model.Cart{}, repo.ErrInvalidQuantity
	}

	var cart model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := ensureCart(tx, userID, now); err != nil {
			return err
		}
		if err := lockCart(tx, userID); err != nil {
			return err
		}

		var existing model.CartItem
		err := tx.
			Where("user_id = ? AND product_id = ?", userID, item.ProductID).
			First(&existing).Error

		switch {
		case err == nil:
			// 既存ありだったら数量を増やす
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"quantity":   gorm.Expr("quantity + ?", item.Quantity),
					"updated_at": now,
				})
			if res.Error != nil {
				return res.Error
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			//無い場合は末尾に新規作成
			var next int
			if err := tx.Model(&model.CartItem{}).
				Where("user_id = ?", userID).
				Select("COALESCE(MAX(position), -1) + 1").
				Scan(&next).Error; err != nil {
				return err
			}

			newItem := model.CartItem{
				ID:        uuid.NewString(),
				UserID:    userID,
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				ImageURL:  item.ImageURL,
				Quantity:  item.Quantity,
				Position:  next,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&newItem).Error; err != nil {
				return err
			}

		default:
			return err
		}

		if err := touchCart(tx, userID, now); err != nil {
			return err
		}

		loaded, err := loadCart(tx, userID)
		if err != nil {
			return err
		}
		cart = loaded
		return nil
	})
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 明細を削除（無い明細は何もしない）
func (r *CartGormRepository) RemoveItem(ctx context.Context, userID string, lineID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, userID); err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", lineID, userID).Delete(&model.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			if err := touchCart(tx, userID, time.Now()); err != nil {
				return err
			}
		}

		loaded, err := loadCart(tx, userID)
		if err != nil {
			return err
		}
		cart = loaded
		return nil
	})
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 明細の数量を更新（1未満は1）
func (r *CartGormRepository) UpdateItemQuantity(ctx context.Context, userID string, lineID string, qty int) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, userID); err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&model.CartItem{}).
			Where("id = ? AND user_id = ?", lineID, userID).
			Updates(map[string]interface{}{
				"quantity":   repo.ClampQuantity(qty),
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		if err := touchCart(tx, userID, now); err != nil {
			return err
		}

		loaded, err := loadCart(tx, userID)
		if err != nil {
			return err
		}
		cart = loaded
		return nil
	})
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 明細を全削除（カートは残す）
func (r *CartGormRepository) Clear(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := ensureCart(tx, userID, now); err != nil {
			return err
		}
		if err := lockCart(tx, userID); err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if err := touchCart(tx, userID, now); err != nil {
			return err
		}

		loaded, err := loadCart(tx, userID)
		if err != nil {
			return err
		}
		cart = loaded
		return nil
	})
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 無ければ作る（同時作成は無視）
func ensureCart(tx *gorm.DB, userID string, now time.Time) error {
	return tx.
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&model.Cart{
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
}

func lockCart(tx *gorm.DB, userID string) error {
	var cart model.Cart
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	return err
}

func touchCart(tx *gorm.DB, userID string, now time.Time) error {
	return tx.Model(&model.Cart{}).
		Where("user_id = ?", userID).
		Update("updated_at", now).Error
}

// 明細は追加順
func loadCart(db *gorm.DB, userID string) (model.Cart, error) {
	var cart model.Cart

	err := db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}

	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart, nil
}
