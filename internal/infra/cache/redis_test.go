package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"storefront/internal/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// miniredisに向けたRedisCacheを作る
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, 10*time.Minute), mr
}

func TestRedisCache_GetMiss(t *testing.T) {
	c, _ := setupTestRedis(t)

	_, err := c.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := model.Cart{
		UserID: "u1",
		Items: []model.CartItem{
			{ID: "line-1", ProductID: "p1", Name: "Classic Cotton T-Shirt", Price: 19.99, Quantity: 2},
		},
	}
	require.NoError(t, c.Set(ctx, cart))
	assert.True(t, mr.Exists(cacheKey("u1")))

	// TTLは基本TTL以上、ずらし分を足しても15分未満
	ttl := mr.TTL(cacheKey("u1"))
	assert.GreaterOrEqual(t, ttl, 10*time.Minute)
	assert.Less(t, ttl, 15*time.Minute)

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)

	require.NoError(t, c.Delete(ctx, "u1"))
	assert.False(t, mr.Exists(cacheKey("u1")))
}

func TestRedisCache_GetCorruptedData(t *testing.T) {
	c, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(cacheKey("u1"), "not-json"))

	_, err := c.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_EmptyItemsDecodeAsEmptySlice(t *testing.T) {
	c, mr := setupTestRedis(t)
	data, err := json.Marshal(map[string]interface{}{"userId": "u1", "items": nil})
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey("u1"), string(data)))

	got, err := c.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestRedisCache_ConnectionError(t *testing.T) {
	c, mr := setupTestRedis(t)
	mr.Close()

	_, err := c.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
