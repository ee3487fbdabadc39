package payment

import (
	"errors"
	"net/url"
	"time"
)

// HostedConfig contains configuration for the external hosted payment page
type HostedConfig struct {
	// Endpoint is the gateway's session-creation URL
	Endpoint string
	// APIKey authenticates session requests, sent as a bearer token
	APIKey string
	// Timeout bounds the outbound session request
	Timeout time.Duration
}

// Errors for configuration validation
var (
	ErrHostedMissingEndpoint = errors.New("hosted: missing gateway endpoint")
	ErrHostedInvalidEndpoint = errors.New("hosted: gateway endpoint is not a valid URL")
)

// Validate validates the configuration and applies defaults
func (c *HostedConfig) Validate() error {
	if c.Endpoint == "" {
		return ErrHostedMissingEndpoint
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrHostedInvalidEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
