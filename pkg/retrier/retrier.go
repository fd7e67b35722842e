package retrier

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultInitialInterval = 1 * time.Second
	defaultMaxInterval     = 30 * time.Second
	defaultMultiplier      = 2.0
	defaultMaxRetries      = 5
	defaultJitter          = 0.1
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// NotifyFunc is called after a failed attempt that will be retried.
// attempt is 1-based, wait is the pause before the next attempt.
type NotifyFunc func(attempt int, err error, wait time.Duration)

// Retrier runs a function up to maxRetries+1 times with a pluggable backoff.
// The default strategy is exponential backoff with jitter.
type Retrier struct {
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
	maxRetries      int
	jitter          float64
	newBackOff      func() backoff.BackOff
	sleep           SleepFunc
	notify          NotifyFunc
}

// Option defines a function to configure the Retrier.
type Option func(*Retrier)

// WithInitialInterval sets the initial retry interval.
func WithInitialInterval(d time.Duration) Option {
	return func(r *Retrier) {
		r.initialInterval = d
	}
}

// WithMaxInterval sets the maximum retry interval.
func WithMaxInterval(d time.Duration) Option {
	return func(r *Retrier) {
		r.maxInterval = d
	}
}

// WithMultiplier sets the backoff multiplier.
func WithMultiplier(m float64) Option {
	return func(r *Retrier) {
		r.multiplier = m
	}
}

// WithMaxRetries sets the maximum number of retries.
func WithMaxRetries(n int) Option {
	return func(r *Retrier) {
		if n < 0 {
			n = 0
		}
		r.maxRetries = n
	}
}

// WithJitter sets the jitter factor (0.0 to 1.0).
func WithJitter(j float64) Option {
	return func(r *Retrier) {
		r.jitter = j
	}
}

// WithBackOff replaces the exponential strategy. newBackOff is called once per Do,
// so stateful strategies are never shared between calls.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(r *Retrier) {
		r.newBackOff = newBackOff
	}
}

// WithSleep replaces the wait between attempts.
func WithSleep(sleep SleepFunc) Option {
	return func(r *Retrier) {
		r.sleep = sleep
	}
}

// WithNotify sets a callback invoked before every retry.
func WithNotify(notify NotifyFunc) Option {
	return func(r *Retrier) {
		r.notify = notify
	}
}

// New creates a new Retrier with default values and optional overrides.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
		multiplier:      defaultMultiplier,
		maxRetries:      defaultMaxRetries,
		jitter:          defaultJitter,
		sleep:           Sleep,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// MaxAttempts returns the total attempt budget.
func (r *Retrier) MaxAttempts() int {
	return r.maxRetries + 1
}

// Do executes the given function with retries.
// It returns nil on the first success, otherwise the error of the last attempt.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	b := r.backOff()
	b.Reset()

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt == r.maxRetries {
			break
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			break
		}
		if r.notify != nil {
			r.notify(attempt+1, err, wait)
		}
		if sleepErr := r.sleep(ctx, wait); sleepErr != nil {
			return sleepErr
		}
	}

	return err
}

// DoWithData executes the given function with retries and returns a value.
func DoWithData[T any](r *Retrier, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		var e error
		result, e = fn(ctx)
		return e
	})
	return result, err
}

func (r *Retrier) backOff() backoff.BackOff {
	if r.newBackOff != nil {
		return r.newBackOff()
	}

	b := &backoff.ExponentialBackOff{
		InitialInterval:     r.initialInterval,
		RandomizationFactor: r.jitter,
		Multiplier:          r.multiplier,
		MaxInterval:         r.maxInterval,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	return b
}

// Sleep waits for d unless ctx is cancelled first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
