package retrier

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// LinearBackOff waits step, 2*step, 3*step, ... between attempts. No jitter.
type LinearBackOff struct {
	step    time.Duration
	attempt int
}

var _ backoff.BackOff = (*LinearBackOff)(nil)

// NewLinear creates a linear strategy with the given step.
func NewLinear(step time.Duration) *LinearBackOff {
	return &LinearBackOff{step: step}
}

// NextBackOff returns step * (index of the failed attempt + 1).
func (b *LinearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.step
}

// Reset starts the sequence over.
func (b *LinearBackOff) Reset() {
	b.attempt = 0
}

// Linear returns a factory for WithBackOff.
func Linear(step time.Duration) func() backoff.BackOff {
	return func() backoff.BackOff {
		return NewLinear(step)
	}
}
