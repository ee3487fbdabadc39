package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v81"
)

// StripeConfig holds configuration for Stripe Checkout integration
type StripeConfig struct {
	// SecretKey is the Stripe secret API key (sk_test_xxx or sk_live_xxx)
	SecretKey string

	// Currency is the ISO currency code used for checkout sessions (e.g. "usd")
	Currency string
}

// Validate validates the Stripe configuration and applies defaults
func (c *StripeConfig) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("stripe: secret key is required")
	}
	if c.Currency == "" {
		c.Currency = "usd"
	}
	return nil
}

// InitStripeClient sets the global Stripe API key
func (c *StripeConfig) InitStripeClient() {
	stripe.Key = c.SecretKey
}
