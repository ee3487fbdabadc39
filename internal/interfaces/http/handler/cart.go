package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CartHandler handles shopping cart endpoints. The cart is addressed by
// the cart_id cookie the CartID middleware maintains, so guests and
// logged-in shoppers use the same routes.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the current cart with derived item count and total
func (h *CartHandler) Get(c *gin.Context) {
	cartID := middleware.GetCartID(c)
	if cartID == "" {
		h.BadRequest(c, "Cart ID missing")
		return
	}

	resp, err := h.cartService.Get(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AddItem adds a product to the cart, merging with an existing line for
// the same product
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID := middleware.GetCartID(c)
	if cartID == "" {
		h.BadRequest(c, "Cart ID missing")
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.cartService.AddItem(c.Request.Context(), cartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateItem sets a line's quantity; zero removes the line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID := middleware.GetCartID(c)
	if cartID == "" {
		h.BadRequest(c, "Cart ID missing")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.cartService.UpdateItem(c.Request.Context(), cartID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveItem deletes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID := middleware.GetCartID(c)
	if cartID == "" {
		h.BadRequest(c, "Cart ID missing")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	resp, err := h.cartService.RemoveItem(c.Request.Context(), cartID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	cartID := middleware.GetCartID(c)
	if cartID == "" {
		h.BadRequest(c, "Cart ID missing")
		return
	}

	resp, err := h.cartService.Clear(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
