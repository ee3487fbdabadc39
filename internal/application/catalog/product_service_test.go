package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindFeatured(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountActive(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a product with optional fields", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)

		inventory := 12
		featured := true
		req := CreateProductRequest{
			SKU:            "sku-100",
			Name:           "Walnut Desk",
			Description:    "A desk made of walnut",
			Price:          decimal.RequireFromString("249.00"),
			ImageURL:       "https://cdn.example.com/desk.jpg",
			InventoryCount: &inventory,
			Featured:       &featured,
		}

		productRepo.On("ExistsBySKU", ctx, "sku-100").Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "SKU-100", resp.SKU)
		assert.Equal(t, "Walnut Desk", resp.Name)
		assert.Equal(t, 12, resp.InventoryCount)
		assert.True(t, resp.Featured)
		assert.True(t, resp.InStock)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate SKU", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)

		productRepo.On("ExistsBySKU", ctx, "sku-100").Return(true, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			SKU:   "sku-100",
			Name:  "Walnut Desk",
			Price: decimal.RequireFromString("249.00"),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)

		categoryID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
		productRepo.On("ExistsBySKU", ctx, "sku-100").Return(false, nil)
		categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateProductRequest{
			SKU:        "sku-100",
			Name:       "Walnut Desk",
			Price:      decimal.RequireFromString("249.00"),
			CategoryID: &categoryID,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Category not found")
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial updates", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)

		product, err := catalog.NewProduct("SKU-100", "Walnut Desk", decimal.RequireFromString("249.00"))
		require.NoError(t, err)

		newPrice := decimal.RequireFromString("199.00")
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		resp, err := service.Update(ctx, product.ID, UpdateProductRequest{Price: &newPrice})

		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(newPrice))
		assert.Equal(t, "Walnut Desk", resp.Name)
	})

	t.Run("propagates not found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)

		id := uuid.MustParse("44444444-4444-4444-4444-444444444444")
		productRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, id, UpdateProductRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("lists active products with pagination", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)

		p1, _ := catalog.NewProduct("SKU-1", "Alpha", decimal.RequireFromString("9.99"))
		p2, _ := catalog.NewProduct("SKU-2", "Beta", decimal.RequireFromString("4.50"))

		productRepo.On("FindActive", ctx, mock.AnythingOfType("shared.Filter")).Return([]catalog.Product{*p1, *p2}, nil)
		productRepo.On("CountActive", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

		result, err := service.List(ctx, ProductListFilter{Page: 1, PageSize: 20})

		require.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, int64(2), result.Total)
		assert.Equal(t, 1, result.TotalPages)
	})

	t.Run("filters by category when one is given", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo)

		categoryID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
		productRepo.On("FindByCategory", ctx, categoryID, mock.AnythingOfType("shared.Filter")).Return([]catalog.Product{}, nil)
		productRepo.On("CountActive", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

		result, err := service.List(ctx, ProductListFilter{CategoryID: &categoryID})

		require.NoError(t, err)
		assert.Empty(t, result.Items)
		productRepo.AssertCalled(t, "FindByCategory", ctx, categoryID, mock.AnythingOfType("shared.Filter"))
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses to delete a category with products", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo)

		category, err := catalog.NewCategory("desks", "Desks")
		require.NoError(t, err)

		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
		categoryRepo.On("HasProducts", ctx, category.ID).Return(true, nil)

		err = service.Delete(ctx, category.ID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "still has products")
		categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes an empty category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo)

		category, err := catalog.NewCategory("desks", "Desks")
		require.NoError(t, err)

		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
		categoryRepo.On("HasProducts", ctx, category.ID).Return(false, nil)
		categoryRepo.On("Delete", ctx, category.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, category.ID))
		categoryRepo.AssertExpectations(t)
	})
}
