package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "sku", "name", "price", "inventory_count", "featured", "status"}).
			AddRow(productID, "MUG-CERAMIC-01", "Ceramic Mug", decimal.RequireFromString("12.50"), 40, false, "active")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)
		require.NoError(t, err)
		assert.Equal(t, "MUG-CERAMIC-01", product.SKU)
		assert.Equal(t, "Ceramic Mug", product.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing product", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "products"`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)
		assert.Nil(t, product)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindBySKU(t *testing.T) {
	t.Run("uppercases the SKU before querying", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "sku", "name", "price", "status"}).
			AddRow(productID, "MUG-CERAMIC-01", "Ceramic Mug", decimal.RequireFromString("12.50"), "active")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE sku = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("MUG-CERAMIC-01", 1).
			WillReturnRows(rows)

		product, err := repo.FindBySKU(context.Background(), "mug-ceramic-01")
		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
	})
}

func TestGormProductRepository_FindActive(t *testing.T) {
	t.Run("filters by status with pagination", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		rows := sqlmock.NewRows([]string{"id", "sku", "name", "price", "status"}).
			AddRow(uuid.New(), "MUG-CERAMIC-01", "Ceramic Mug", decimal.RequireFromString("12.50"), "active").
			AddRow(uuid.New(), "MUG-STEEL-01", "Steel Mug", decimal.RequireFromString("18.00"), "active")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE status = \$1 ORDER BY name ASC LIMIT .*`).
			WithArgs("active", 20).
			WillReturnRows(rows)

		products, err := repo.FindActive(context.Background(), shared.Filter{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("rejects unknown sort field", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		rows := sqlmock.NewRows([]string{"id", "sku", "name", "price", "status"})

		// "password_hash; DROP TABLE" is not whitelisted, falls back to name
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE status = \$1 ORDER BY name DESC`).
			WithArgs("active").
			WillReturnRows(rows)

		_, err := repo.FindActive(context.Background(), shared.Filter{OrderBy: "password_hash; DROP TABLE", OrderDir: "desc"})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindFeatured(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormProductRepository(db)

	rows := sqlmock.NewRows([]string{"id", "sku", "name", "price", "featured", "status"}).
		AddRow(uuid.New(), "MUG-CERAMIC-01", "Ceramic Mug", decimal.RequireFromString("12.50"), true, "active")

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE featured = \$1 AND status = \$2 ORDER BY updated_at DESC LIMIT .*`).
		WithArgs(true, "active", 8).
		WillReturnRows(rows)

	products, err := repo.FindFeatured(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Featured)
}

func TestGormProductRepository_ExistsBySKU(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE sku = \$1`).
		WithArgs("MUG-CERAMIC-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsBySKU(context.Background(), "mug-ceramic-01")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), productID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("sideways"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "price", ValidateSortField("price", ProductSortFields, "name"))
	assert.Equal(t, "name", ValidateSortField("", ProductSortFields, "name"))
	assert.Equal(t, "name", ValidateSortField("1; DROP TABLE products", ProductSortFields, "name"))
}
