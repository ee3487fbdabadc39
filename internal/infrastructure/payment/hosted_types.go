package payment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// hostedCartItem is one cart line as the gateway expects it
type hostedCartItem struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Category string          `json:"category,omitempty"`
	SKU      string          `json:"sku,omitempty"`
}

// hostedSessionRequest is the session-creation request body
type hostedSessionRequest struct {
	CartItems  []hostedCartItem `json:"cartItems"`
	SuccessURL string           `json:"successUrl"`
	CancelURL  string           `json:"cancelUrl"`
}

// hostedSessionResponse is the gateway's answer. Exactly one of URL and
// Error is expected to be set.
type hostedSessionResponse struct {
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}
