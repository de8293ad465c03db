package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartStore() *CartStore {
	s := NewCartStore()
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	}
	s.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func tshirt(qty int) model.NewCartItem {
	return model.NewCartItem{ProductID: "p1", Name: "Classic Cotton T-Shirt", Price: 19.99, Quantity: qty}
}

func TestCartStore_GetOrCreate_CreatesEmptyCart(t *testing.T) {
	s := newTestCartStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "u1")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	cart, err := s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
}

func TestCartStore_AddItem_MergesSameProduct(t *testing.T) {
	s := newTestCartStore()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "u1", tshirt(2))
	require.NoError(t, err)
	cart, err := s.AddItem(ctx, "u1", tshirt(1))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "line-1", cart.Items[0].ID)
}

func TestCartStore_AddItem_AppendsInInsertionOrder(t *testing.T) {
	s := newTestCartStore()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "u1", tshirt(1))
	require.NoError(t, err)
	cart, err := s.AddItem(ctx, "u1", model.NewCartItem{ProductID: "p3", Name: "Headphones", Price: 89.99, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, "p1", cart.Items[0].ProductID)
	assert.Equal(t, "p3", cart.Items[1].ProductID)
	assert.NotEqual(t, cart.Items[0].ID, cart.Items[1].ID)
}

func TestCartStore_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	s := newTestCartStore()

	_, err := s.AddItem(context.Background(), "u1", tshirt(0))
	assert.ErrorIs(t, err, repo.ErrInvalidQuantity)
}

func TestCartStore_RemoveItem(t *testing.T) {
	s := newTestCartStore()
	ctx := context.Background()

	_, err := s.RemoveItem(ctx, "nobody", "line-1")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	cart, err := s.AddItem(ctx, "u1", tshirt(1))
	require.NoError(t, err)
	lineID := cart.Items[0].ID

	cart, err = s.RemoveItem(ctx, "u1", lineID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// 2回目も同じ結果（エラーにならない）
	cart, err = s.RemoveItem(ctx, "u1", lineID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

// 1未満は削除やエラーではなく1に丸める（意図した動き）
func TestCartStore_UpdateItemQuantity_ClampsToOne(t *testing.T) {
	s := newTestCartStore()
	ctx := context.Background()

	cart, err := s.AddItem(ctx, "u1", tshirt(4))
	require.NoError(t, err)
	lineID := cart.Items[0].ID

	for _, qty := range []int{0, -3} {
		cart, err = s.UpdateItemQuantity(ctx, "u1", lineID, qty)
		require.NoError(t, err)
		assert.Equal(t, 1, cart.Items[0].Quantity, "qty=%d", qty)
	}

	cart, err = s.UpdateItemQuantity(ctx, "u1", lineID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartStore_UpdateItemQuantity_NotFound(t *testing.T) {
	s := newTestCartStore()
	ctx := context.Background()

	_, err := s.UpdateItemQuantity(ctx, "u1", "line-1", 2)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = s.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	_, err = s.UpdateItemQuantity(ctx, "u1", "missing", 2)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCartStore_Clear(t *testing.T) {
	s := newTestCartStore()
	ctx := context.Background()

	// カートが無くても作って空にする
	cart, err := s.Clear(ctx, "fresh")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = s.AddItem(ctx, "u1", tshirt(2))
	require.NoError(t, err)
	_, err = s.Clear(ctx, "u1")
	require.NoError(t, err)

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestCartStore_ReturnsCopies(t *testing.T) {
	s := newTestCartStore()
	ctx := context.Background()

	cart, err := s.AddItem(ctx, "u1", tshirt(2))
	require.NoError(t, err)
	cart.Items[0].Quantity = 99

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestCartStore_ConcurrentAdds(t *testing.T) {
	s := NewCartStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddItem(ctx, "u1", tshirt(1))
		}()
	}
	wg.Wait()

	cart, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 50, cart.Items[0].Quantity)
}
