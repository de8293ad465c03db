package cache

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

type CartCache interface {
	Get(ctx context.Context, userID string) (model.Cart, error)
	Set(ctx context.Context, cart model.Cart) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")
