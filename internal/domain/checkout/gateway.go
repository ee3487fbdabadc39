package checkout

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
)

// SessionRequest carries everything a gateway needs to open a hosted
// payment session: the cart contents and the URLs the shopper is sent
// back to after paying or abandoning.
type SessionRequest struct {
	CartID     string
	Items      []cart.Item
	SuccessURL string
	CancelURL  string
}

// Session is the gateway's answer to a session request. URL is the hosted
// payment page the shopper must be redirected to.
type Session struct {
	URL string
}

// Gateway opens hosted payment sessions with an external payment provider.
// Implementations live in infrastructure/payment.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}
