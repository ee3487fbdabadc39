package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU            string          `json:"sku" binding:"required,min=1,max=50"`
	Name           string          `json:"name" binding:"required,min=1,max=200"`
	Description    string          `json:"description" binding:"max=2000"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	ImageURL       string          `json:"image_url" binding:"omitempty,max=500"`
	CategoryID     *uuid.UUID      `json:"category_id"`
	InventoryCount *int            `json:"inventory_count"`
	Featured       *bool           `json:"featured"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description" binding:"omitempty,max=2000"`
	Price          *decimal.Decimal `json:"price"`
	ImageURL       *string          `json:"image_url" binding:"omitempty,max=500"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	InventoryCount *int             `json:"inventory_count"`
	Featured       *bool            `json:"featured"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       string          `json:"image_url"`
	CategoryID     *uuid.UUID      `json:"category_id"`
	InventoryCount int             `json:"inventory_count"`
	Featured       bool            `json:"featured"`
	Status         string          `json:"status"`
	InStock        bool            `json:"in_stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	Featured   *bool      `form:"featured"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Slug      string `json:"slug" binding:"required,slug,max=50"`
	Name      string `json:"name" binding:"required,min=1,max=100"`
	SortOrder *int   `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	SortOrder *int    `json:"sort_order"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		ImageURL:       p.ImageURL,
		CategoryID:     p.CategoryID,
		InventoryCount: p.InventoryCount,
		Featured:       p.Featured,
		Status:         string(p.Status),
		InStock:        p.InStock(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Slug:      c.Slug,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
