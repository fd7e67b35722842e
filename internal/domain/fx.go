// Package domain defines core data structures used throughout the status service.
package domain

import "time"

const (
	// DefaultBaseURL upstream trading API root.
	DefaultBaseURL = "https://ciapi.fxcorporate.com/tradeapi"
	// DefaultTimeout per-request wall-clock bound.
	DefaultTimeout = 20 * time.Second
	// DefaultMaxRetries additional attempts after the first one.
	DefaultMaxRetries = 2
	// DefaultInterval price bar interval used when none is given.
	DefaultInterval = "1m"
	// Pip smallest standard price increment for EUR/USD.
	Pip = 0.0001
)

// Credentials upstream login data. Immutable for the lifetime of a client.
type Credentials struct {
	Username string
	Password string
	AppKey   string
}

// ClientConfig connection settings for a single upstream client.
type ClientConfig struct {
	// BaseURL upstream API root, trailing slash is ignored.
	BaseURL string
	// Timeout bound for one HTTP request (not for the whole retry sequence).
	Timeout time.Duration
	// MaxRetries number of additional attempts after a failed one.
	MaxRetries int
	// AccountID optional account the operator expects; informational only.
	AccountID string
	// RequestsPerSecond client-side request rate cap, 0 disables it.
	RequestsPerSecond float64
}

// DefaultClientConfig returns the configuration used when nothing is overridden.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
	}
}

// WithDefaults fills zero fields with defaults.
func (c ClientConfig) WithDefaults() ClientConfig {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}
