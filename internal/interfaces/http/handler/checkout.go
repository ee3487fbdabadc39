package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the hosted-payment checkout flow
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CreateSession opens a payment session for the current cart and returns
// the hosted page to redirect the shopper to
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	cartID := middleware.GetCartID(c)
	if cartID == "" {
		h.BadRequest(c, "Cart ID missing")
		return
	}

	var req checkoutapp.InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.checkoutService.Initiate(c.Request.Context(), cartID, req)
	if err != nil {
		h.handleCheckoutError(c, err)
		return
	}

	h.Success(c, resp)
}

// Complete records the paid order and clears the cart when the shopper
// lands back from the payment page. Refreshing the page finds an empty
// cart and simply returns no order.
func (h *CheckoutHandler) Complete(c *gin.Context) {
	cartID := middleware.GetCartID(c)
	if cartID == "" {
		h.BadRequest(c, "Cart ID missing")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	order, err := h.checkoutService.Complete(c.Request.Context(), cartID, userID)
	if err != nil {
		h.handleCheckoutError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel acknowledges the shopper abandoning payment. The cart is left
// exactly as it was.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	cartID := middleware.GetCartID(c)
	if cartID == "" {
		h.BadRequest(c, "Cart ID missing")
		return
	}

	if err := h.checkoutService.Cancel(c.Request.Context(), cartID); err != nil {
		h.handleCheckoutError(c, err)
		return
	}

	h.NoContent(c)
}

// handleCheckoutError maps checkout-specific failures before falling back
// to the shared domain error handling
func (h *CheckoutHandler) handleCheckoutError(c *gin.Context, err error) {
	if errors.Is(err, checkout.ErrCartEmpty) {
		h.ErrorWithCode(c, dto.ErrCodeCartEmpty, checkout.ErrCartEmpty.Error())
		return
	}

	var gatewayErr *checkout.GatewayError
	if errors.As(err, &gatewayErr) {
		h.ErrorWithCode(c, dto.ErrCodePaymentGateway, gatewayErr.Message)
		return
	}

	if errors.Is(err, checkout.ErrMissingCheckoutURL) {
		h.ErrorWithCode(c, dto.ErrCodePaymentGateway, "Payment gateway returned no checkout URL")
		return
	}

	h.HandleError(c, err)
}
