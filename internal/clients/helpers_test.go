package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/domain"
	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/pkg/retrier"
)

// upstream is a scripted fake of the trading API.
type upstream struct {
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
	server   *httptest.Server
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{handlers: map[string]http.HandlerFunc{}, calls: map[string]int{}}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		u.mu.Lock()
		u.calls[key]++
		h, ok := u.handlers[key]
		u.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(u.server.Close)
	return u
}

func (u *upstream) handle(method, path string, h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.handlers[method+" "+path] = h
}

func (u *upstream) count(method, path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[method+" "+path]
}

func (u *upstream) config(maxRetries int) domain.ClientConfig {
	return domain.ClientConfig{
		BaseURL:    u.server.URL + "/",
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
	}
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// failFirst answers 503 for the first n calls, then delegates to next.
func failFirst(n int, next http.HandlerFunc) http.HandlerFunc {
	var mu sync.Mutex
	seen := 0
	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen++
		current := seen
		mu.Unlock()
		if current <= n {
			respond(http.StatusServiceUnavailable, `{"error":"busy"}`)(w, r)
			return
		}
		next(w, r)
	}
}

func noSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func fastRetries() Option {
	return WithRetryOptions(retrier.WithSleep(noSleep))
}
