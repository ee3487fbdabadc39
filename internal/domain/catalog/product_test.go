package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Test Product", decimal.NewFromFloat(19.99))
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "SKU-001", product.SKU)
		assert.Equal(t, "Test Product", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(19.99)))
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Nil(t, product.CategoryID)
		assert.Zero(t, product.InventoryCount)
		assert.False(t, product.Featured)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("converts SKU to uppercase", func(t *testing.T) {
		product, err := NewProduct("sku-001", "Test Product", decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", product.SKU)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("SKU-002", "Test Product", decimal.Zero)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.SKU, event.SKU)
		assert.Equal(t, product.Name, event.Name)
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		_, err := NewProduct("", "Test Product", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU cannot be empty")
	})

	t.Run("fails with invalid SKU characters", func(t *testing.T) {
		_, err := NewProduct("SKU@001", "Test Product", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can only contain letters")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "Test Product", decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestProduct_SetPrice(t *testing.T) {
	product, _ := NewProduct("SKU-001", "Test Product", decimal.NewFromInt(10))
	product.ClearDomainEvents()

	t.Run("updates price and publishes event", func(t *testing.T) {
		err := product.SetPrice(decimal.NewFromFloat(24.50))
		require.NoError(t, err)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(24.50)))

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*ProductPriceChangedEvent)
		require.True(t, ok)
		assert.True(t, event.OldPrice.Equal(decimal.NewFromInt(10)))
		assert.True(t, event.NewPrice.Equal(decimal.NewFromFloat(24.50)))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		err := product.SetPrice(decimal.NewFromInt(-5))
		require.Error(t, err)
	})
}

func TestProduct_SetInventoryCount(t *testing.T) {
	product, _ := NewProduct("SKU-001", "Test Product", decimal.Zero)

	require.NoError(t, product.SetInventoryCount(42))
	assert.Equal(t, 42, product.InventoryCount)
	assert.True(t, product.InStock())

	require.NoError(t, product.SetInventoryCount(0))
	assert.False(t, product.InStock())

	err := product.SetInventoryCount(-1)
	require.Error(t, err)
}

func TestProduct_StatusTransitions(t *testing.T) {
	product, _ := NewProduct("SKU-001", "Test Product", decimal.Zero)

	t.Run("cannot activate an active product", func(t *testing.T) {
		err := product.Activate()
		require.Error(t, err)
	})

	t.Run("deactivate then activate", func(t *testing.T) {
		require.NoError(t, product.Deactivate())
		assert.False(t, product.IsActive())

		require.NoError(t, product.Activate())
		assert.True(t, product.IsActive())
	})

	t.Run("cannot deactivate an inactive product twice", func(t *testing.T) {
		require.NoError(t, product.Deactivate())
		err := product.Deactivate()
		require.Error(t, err)
	})
}

func TestProduct_SetCategory(t *testing.T) {
	product, _ := NewProduct("SKU-001", "Test Product", decimal.Zero)
	categoryID := uuid.New()

	product.SetCategory(&categoryID)
	assert.True(t, product.HasCategory())
	assert.Equal(t, categoryID, *product.CategoryID)

	product.SetCategory(nil)
	assert.False(t, product.HasCategory())
}

func TestNewCategory(t *testing.T) {
	t.Run("creates category with valid inputs", func(t *testing.T) {
		category, err := NewCategory("Electronics", "Electronics")
		require.NoError(t, err)
		assert.Equal(t, "electronics", category.Slug)
		assert.Equal(t, "Electronics", category.Name)
	})

	t.Run("fails with empty slug", func(t *testing.T) {
		_, err := NewCategory("", "Electronics")
		require.Error(t, err)
	})

	t.Run("fails with invalid slug characters", func(t *testing.T) {
		_, err := NewCategory("home & garden", "Home & Garden")
		require.Error(t, err)
	})
}
