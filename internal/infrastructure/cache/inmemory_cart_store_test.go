package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/cart"
)

func TestInMemoryCartStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCartStore()

	c := cart.New("cart-1")
	c.AddItem(cart.ItemSnapshot{
		ProductID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:      "Alpha",
		Price:     decimal.RequireFromString("9.99"),
		SKU:       "SKU-1",
	}, 2)

	require.NoError(t, store.Save(ctx, c))

	loaded, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Alpha", loaded.Items[0].Name)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
	assert.True(t, loaded.Total().Equal(decimal.RequireFromString("19.98")))
}

func TestInMemoryCartStore_LoadMissing(t *testing.T) {
	store := NewInMemoryCartStore()

	c, err := store.Load(context.Background(), "unknown")

	require.NoError(t, err)
	assert.Equal(t, "unknown", c.ID)
	assert.True(t, c.IsEmpty())
}

func TestInMemoryCartStore_CorruptState(t *testing.T) {
	store := NewInMemoryCartStore()
	store.Seed("cart-1", []byte("{not json"))

	c, err := store.Load(context.Background(), "cart-1")

	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestInMemoryCartStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCartStore()

	c := cart.New("cart-1")
	c.AddItem(cart.ItemSnapshot{
		ProductID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:      "Alpha",
		Price:     decimal.RequireFromString("9.99"),
	}, 1)
	require.NoError(t, store.Save(ctx, c))

	require.NoError(t, store.Delete(ctx, "cart-1"))

	loaded, err := store.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())

	// Deleting again is a no-op
	require.NoError(t, store.Delete(ctx, "cart-1"))
}
