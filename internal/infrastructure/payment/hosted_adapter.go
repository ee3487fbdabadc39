package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/checkout"
)

// HostedAdapter implements checkout.Gateway against an external hosted
// payment page. The provider receives the cart contents plus the success
// and cancel URLs and answers with the URL of the page the shopper must
// be redirected to.
type HostedAdapter struct {
	config     *HostedConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHostedAdapter creates a new hosted payment page adapter
func NewHostedAdapter(config *HostedConfig, logger *zap.Logger) (*HostedAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &HostedAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}, nil
}

// CreateSession opens a payment session and returns the hosted page URL
func (a *HostedAdapter) CreateSession(ctx context.Context, req checkout.SessionRequest) (*checkout.Session, error) {
	body := hostedSessionRequest{
		CartItems:  make([]hostedCartItem, 0, len(req.Items)),
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	}
	for _, item := range req.Items {
		body.CartItems = append(body.CartItems, hostedCartItem{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			ImageURL: item.ImageURL,
			Category: item.Category,
			SKU:      item.SKU,
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("hosted: failed to marshal session request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("hosted: failed to build session request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if a.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	}

	a.logger.Debug("Creating hosted payment session",
		zap.String("cart_id", req.CartID),
		zap.Int("items", len(req.Items)))

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("hosted: session request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("hosted: failed to read session response: %w", err)
	}

	var sessionResp hostedSessionResponse
	if err := json.Unmarshal(raw, &sessionResp); err != nil {
		return nil, fmt.Errorf("hosted: failed to decode session response (status %d): %w", resp.StatusCode, err)
	}

	// Providers report failures both through the status code and through
	// an error field in an otherwise well-formed body.
	if sessionResp.Error != "" {
		a.logger.Warn("Hosted gateway rejected session",
			zap.String("cart_id", req.CartID),
			zap.Int("status", resp.StatusCode),
			zap.String("gateway_error", sessionResp.Error))
		return nil, checkout.NewGatewayError(sessionResp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, checkout.NewGatewayError(fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
	if sessionResp.URL == "" {
		return nil, checkout.ErrMissingCheckoutURL
	}

	a.logger.Info("Created hosted payment session",
		zap.String("cart_id", req.CartID))

	return &checkout.Session{URL: sessionResp.URL}, nil
}
