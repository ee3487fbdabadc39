package checkout

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/order"
)

// CheckoutService drives the hosted-payment flow: it opens gateway
// sessions from the current cart and reconciles the cart when the shopper
// returns from the payment page.
type CheckoutService struct {
	store     cart.Store
	gateway   checkout.Gateway
	orderRepo order.Repository
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	store cart.Store,
	gateway checkout.Gateway,
	orderRepo order.Repository,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		store:     store,
		gateway:   gateway,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Initiate opens a payment session for the cart's current contents and
// returns the hosted page to redirect the shopper to. The cart is left
// untouched; it is only cleared when the gateway confirms payment.
func (s *CheckoutService) Initiate(ctx context.Context, cartID string, req InitiateRequest) (*InitiateResponse, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, checkout.ErrCartEmpty
	}

	session, err := s.gateway.CreateSession(ctx, checkout.SessionRequest{
		CartID:     cartID,
		Items:      c.Items,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		s.logger.Warn("checkout session failed",
			zap.String("cart_id", cartID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("checkout session opened",
		zap.String("cart_id", cartID),
		zap.Int("item_count", c.ItemCount()))

	return &InitiateResponse{URL: session.URL}, nil
}

// Complete records the paid order and clears the cart after the shopper
// lands on the success page. It is idempotent: a second call finds an
// empty cart and returns no order and no error, so refreshing the success
// page does not duplicate anything.
func (s *CheckoutService) Complete(ctx context.Context, cartID string, userID uuid.UUID) (*OrderResponse, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		s.logger.Debug("checkout completion on empty cart, nothing to do",
			zap.String("cart_id", cartID))
		return nil, nil
	}

	o, err := order.NewOrder(userID, c.Items)
	if err != nil {
		return nil, err
	}
	if err := o.MarkPaid(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	// The order is durable before the cart is touched. A failure here
	// leaves a stale cart, never a lost order.
	c.Clear()
	if err := s.store.Save(ctx, c); err != nil {
		s.logger.Error("cart clear failed after order was recorded",
			zap.String("cart_id", cartID),
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("checkout completed",
		zap.String("cart_id", cartID),
		zap.String("order_id", o.ID.String()),
		zap.String("total", o.Total.String()))

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Cancel handles the shopper returning from the payment page without
// paying. The cart is deliberately left exactly as it was.
func (s *CheckoutService) Cancel(ctx context.Context, cartID string) error {
	s.logger.Info("checkout cancelled", zap.String("cart_id", cartID))
	return nil
}
