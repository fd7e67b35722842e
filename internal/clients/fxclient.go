package clients

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/domain"
	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/pkg/retrier"
)

const accountsPath = "/accounts"

// Option configures an FXClient.
type Option func(*clientOptions)

type clientOptions struct {
	retryOpts []retrier.Option
}

// WithRetryOptions passes extra options to the transport retrier.
func WithRetryOptions(opts ...retrier.Option) Option {
	return func(o *clientOptions) {
		o.retryOpts = append(o.retryOpts, opts...)
	}
}

// FXClient reads EUR/USD prices and the account balance from the upstream
// trading API. Methods must be called sequentially; create one client per
// unit of work and pair every Login with a Logout.
type FXClient struct {
	pair      domain.Pair
	transport *Transport
	session   *sessionManager
	logger    *zap.Logger
}

// NewFXClient creates a client in the unauthenticated state.
func NewFXClient(creds domain.Credentials, cfg domain.ClientConfig, logger *zap.Logger, opts ...Option) *FXClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	cfg = cfg.WithDefaults()
	logger = logger.With(zap.String("component", "fx_client"))
	if cfg.AccountID != "" {
		logger = logger.With(zap.String("account_id", cfg.AccountID))
	}

	transport := NewTransport(cfg, logger, o.retryOpts...)
	return &FXClient{
		pair:      domain.EURUSD,
		transport: transport,
		session:   newSessionManager(transport, creds, logger),
		logger:    logger,
	}
}

// Login establishes the upstream session.
func (c *FXClient) Login(ctx context.Context) error {
	return c.session.Login(ctx)
}

// Logout tears the session down. It never fails.
func (c *FXClient) Logout(ctx context.Context) {
	c.session.Logout(ctx)
}

// State returns the current session state.
func (c *FXClient) State() domain.SessionState {
	return c.session.State()
}

// GetBalance returns a snapshot of the first account.
func (c *FXClient) GetBalance(ctx context.Context) (domain.AccountSnapshot, error) {
	data, err := c.transport.Do(ctx, Request{Method: http.MethodGet, Path: accountsPath})
	if err != nil {
		return domain.AccountSnapshot{}, err
	}
	return NormalizeAccount(data), nil
}

// GetPrice returns the latest close for EUR/USD, rounded to 5 digits.
// An empty interval means domain.DefaultInterval.
func (c *FXClient) GetPrice(ctx context.Context, interval string) (float64, error) {
	if interval == "" {
		interval = domain.DefaultInterval
	}

	data, err := c.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/pricebars/" + c.pair.Symbol(),
		Query:  url.Values{"num": {"1"}, "interval": {interval}},
	})
	if err != nil {
		return 0, err
	}

	price, err := NormalizePrice(data)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("price", zap.String("pair", c.pair.String()), zap.Float64("close", price))
	return price, nil
}
