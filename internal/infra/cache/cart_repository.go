package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedCartRepository は読み取りをキャッシュし、更新時にキャッシュを捨てる。
// キャッシュのエラーは握りつぶして下位のRepositoryを使う。
type CachedCartRepository struct {
	next  repo.CartRepository
	cache CartCache
	log   *zap.Logger
	sfg   singleflight.Group

	// 更新ごとに進める世代。読み込み中に世代が変わったら書き戻さない
	mu  sync.Mutex
	gen map[string]uint64
}

func NewCachedCartRepository(next repo.CartRepository, cache CartCache, log *zap.Logger) *CachedCartRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedCartRepository{next: next, cache: cache, log: log, gen: map[string]uint64{}}
}

var _ repo.CartRepository = (*CachedCartRepository)(nil)

func (r *CachedCartRepository) Get(ctx context.Context, userID string) (model.Cart, error) {
	return r.load(ctx, userID, false)
}

func (r *CachedCartRepository) GetOrCreate(ctx context.Context, userID string) (model.Cart, error) {
	return r.load(ctx, userID, true)
}

func (r *CachedCartRepository) AddItem(ctx context.Context, userID string, item model.NewCartItem) (model.Cart, error) {
	cart, err := r.next.AddItem(ctx, userID, item)
	r.invalidate(userID)
	return cart, err
}

func (r *CachedCartRepository) RemoveItem(ctx context.Context, userID string, lineID string) (model.Cart, error) {
	cart, err := r.next.RemoveItem(ctx, userID, lineID)
	r.invalidate(userID)
	return cart, err
}

func (r *CachedCartRepository) UpdateItemQuantity(ctx context.Context, userID string, lineID string, qty int) (model.Cart, error) {
	cart, err := r.next.UpdateItemQuantity(ctx, userID, lineID, qty)
	r.invalidate(userID)
	return cart, err
}

func (r *CachedCartRepository) Clear(ctx context.Context, userID string) (model.Cart, error) {
	cart, err := r.next.Clear(ctx, userID)
	r.invalidate(userID)
	return cart, err
}

// 同じユーザーの同時ミスは1回の読み込みにまとめる
func (r *CachedCartRepository) load(ctx context.Context, userID string, create bool) (model.Cart, error) {
	key := userID
	if create {
		key = "create:" + userID
	}

	v, err, _ := r.sfg.Do(key, func() (interface{}, error) {
		cart, err := r.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			r.log.Warn("cart cache get failed", zap.String("user_id", userID), zap.Error(err))
		}

		g := r.generation(userID)
		if create {
			cart, err = r.next.GetOrCreate(ctx, userID)
		} else {
			cart, err = r.next.Get(ctx, userID)
		}
		if err != nil {
			return model.Cart{}, err
		}

		r.storeIfCurrent(ctx, userID, cart, g)
		return cart, nil
	})
	if err != nil {
		return model.Cart{}, err
	}

	// singleflightの結果は共有されるので複製して返す
	return v.(model.Cart).Clone(), nil
}

func (r *CachedCartRepository) generation(userID string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen[userID]
}

// 読み込み前の世代のままならキャッシュに載せる。
// 判定と書き込みはinvalidateと同じロックの中で行う
func (r *CachedCartRepository) storeIfCurrent(ctx context.Context, userID string, cart model.Cart, g uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen[userID] != g {
		return
	}
	if err := r.cache.Set(ctx, cart); err != nil {
		r.log.Warn("cart cache set failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (r *CachedCartRepository) invalidate(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen[userID]++

	if err := r.cache.Delete(ctx, userID); err != nil {
		r.log.Warn("cart cache invalidate failed", zap.String("user_id", userID), zap.Error(err))
	}
}
