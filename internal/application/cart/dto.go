package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a request to change a line's quantity.
// A quantity of zero removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ItemResponse represents one cart line in API responses
type ItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	Category  string          `json:"category"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse represents the cart in API responses, with the derived
// item count and total alongside the lines.
type CartResponse struct {
	Items     []ItemResponse  `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// ToCartResponse converts a domain Cart to CartResponse
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]ItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Category:  item.Category,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	return CartResponse{
		Items:     items,
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
}
