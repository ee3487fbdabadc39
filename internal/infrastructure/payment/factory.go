package payment

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// NewGateway builds the payment gateway selected by the checkout configuration
func NewGateway(cfg *config.CheckoutConfig, logger *zap.Logger) (checkout.Gateway, error) {
	switch cfg.Gateway {
	case "hosted":
		return NewHostedAdapter(&HostedConfig{
			Endpoint: cfg.Endpoint,
			APIKey:   cfg.APIKey,
			Timeout:  cfg.Timeout,
		}, logger)
	case "stripe":
		return NewStripeAdapter(&StripeConfig{
			SecretKey: cfg.StripeSecretKey,
			Currency:  cfg.Currency,
		}, logger)
	default:
		return nil, fmt.Errorf("payment: unknown gateway %q", cfg.Gateway)
	}
}
