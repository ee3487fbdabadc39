package checkout

import "errors"

// ErrCartEmpty is returned when a checkout is attempted with no items.
// The message is shown to the shopper verbatim.
var ErrCartEmpty = errors.New("Your cart is empty")

// ErrMissingCheckoutURL is returned when the gateway answered success but
// the response carried no redirect URL.
var ErrMissingCheckoutURL = errors.New("payment gateway returned no checkout URL")

// GatewayError wraps a failure reported by the payment gateway itself,
// preserving the provider's message for logs and the API response.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return "payment gateway error: " + e.Message
}

// NewGatewayError wraps a provider-reported failure message
func NewGatewayError(message string) *GatewayError {
	return &GatewayError{Message: message}
}
