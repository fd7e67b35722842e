package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/domain"
	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/pkg/retrier"
)

// retryStep linear backoff step: attempt i waits retryStep*(i+1).
const retryStep = 500 * time.Millisecond

// Request describes one upstream call.
type Request struct {
	Method string
	// Path relative to the base URL, leading slash optional.
	Path  string
	Query url.Values
	// Body is serialized as JSON when not nil.
	Body any
	// Expected status codes, defaults to 200 only.
	Expected []int
}

// HTTPStatusError upstream answered with a status outside the expected set.
type HTTPStatusError struct {
	StatusCode int
	Method     string
	Path       string
	// Payload decoded error body, or {"text": body} when it is not JSON.
	Payload any
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s %s: %v", e.StatusCode, e.Method, e.Path, e.Payload)
}

// Transport executes upstream requests with timeout, retry and backoff.
// Cookies set by the upstream persist for the lifetime of the Transport.
type Transport struct {
	rest      *resty.Client
	limiter   *rate.Limiter
	retryOpts []retrier.Option
	logger    *zap.Logger
}

// NewTransport creates a transport for cfg. Extra retrier options are applied
// after the defaults (linear backoff, cfg.MaxRetries).
func NewTransport(cfg domain.ClientConfig, logger *zap.Logger, retryOpts ...retrier.Option) *Transport {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.WithDefaults()

	// cookiejar.New never fails with nil options
	jar, _ := cookiejar.New(nil)
	rest := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetCookieJar(jar).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	opts := []retrier.Option{
		retrier.WithMaxRetries(cfg.MaxRetries),
		retrier.WithBackOff(retrier.Linear(retryStep)),
	}
	opts = append(opts, retryOpts...)

	return &Transport{
		rest:      rest,
		limiter:   limiter,
		retryOpts: opts,
		logger:    logger,
	}
}

// Do executes req. On an expected status it returns the decoded JSON body,
// or the raw text when the body is not JSON. Every failure, network or status,
// is retried the same way; the final one is returned as *domain.RequestError.
func (t *Transport) Do(ctx context.Context, req Request) (any, error) {
	method := strings.ToUpper(req.Method)
	path := normalizePath(req.Path)
	expected := req.Expected
	if len(expected) == 0 {
		expected = []int{http.StatusOK}
	}

	opts := append(slices.Clone(t.retryOpts), retrier.WithNotify(func(attempt int, err error, wait time.Duration) {
		t.logger.Warn("upstream request failed, retrying",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))
	}))
	r := retrier.New(opts...)

	attempts := 0
	result, err := retrier.DoWithData(r, ctx, func(ctx context.Context) (any, error) {
		attempts++
		return t.execute(ctx, method, path, req, expected)
	})
	if err != nil {
		t.logger.Error("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return nil, &domain.RequestError{Method: method, Path: path, Attempts: attempts, Err: err}
	}

	return result, nil
}

func (t *Transport) execute(ctx context.Context, method, path string, req Request, expected []int) (any, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	r := t.rest.R().SetContext(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(method, path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}

	body := resp.Body()
	if !slices.Contains(expected, resp.StatusCode()) {
		return nil, &HTTPStatusError{
			StatusCode: resp.StatusCode(),
			Method:     method,
			Path:       path,
			Payload:    decodeDiagnostic(body),
		}
	}

	t.logger.Debug("upstream request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()))

	return decodeBody(body), nil
}

func normalizePath(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// decodeBody returns the JSON value of body or body as text.
func decodeBody(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}

func decodeDiagnostic(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return map[string]any{"text": string(body)}
	}
	return v
}
