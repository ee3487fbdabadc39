package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/checkout"
)

// StripeAdapter implements checkout.Gateway using Stripe Checkout, Stripe's
// own hosted payment page.
type StripeAdapter struct {
	config *StripeConfig
	logger *zap.Logger
}

// NewStripeAdapter creates a new Stripe Checkout adapter
func NewStripeAdapter(config *StripeConfig, logger *zap.Logger) (*StripeAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Initialize Stripe client
	config.InitStripeClient()

	return &StripeAdapter{
		config: config,
		logger: logger,
	}, nil
}

var centsPerUnit = decimal.NewFromInt(100)

// CreateSession creates a Stripe Checkout session and returns its URL
func (a *StripeAdapter) CreateSession(ctx context.Context, req checkout.SessionRequest) (*checkout.Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{item.ImageURL})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(a.config.Currency),
				UnitAmount:  stripe.Int64(item.Price.Mul(centsPerUnit).Round(0).IntPart()),
				ProductData: productData,
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.CartID),
	}
	params.Context = ctx

	a.logger.Debug("Creating Stripe checkout session",
		zap.String("cart_id", req.CartID),
		zap.Int("items", len(req.Items)))

	sess, err := session.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			a.logger.Warn("Stripe rejected checkout session",
				zap.String("cart_id", req.CartID),
				zap.String("stripe_code", string(stripeErr.Code)))
			return nil, checkout.NewGatewayError(stripeErr.Msg)
		}
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	if sess.URL == "" {
		return nil, checkout.ErrMissingCheckoutURL
	}

	a.logger.Info("Created Stripe checkout session",
		zap.String("cart_id", req.CartID),
		zap.String("session_id", sess.ID))

	return &checkout.Session{URL: sess.URL}, nil
}
