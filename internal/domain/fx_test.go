package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoundPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 1.123456, want: 1.12346},
		{in: 1.123454, want: 1.12345},
		{in: 1.1, want: 1.1},
		{in: 1.000005, want: 1.00001},
		{in: -1.234565, want: -1.23457},
		{in: 0, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundPrice(tt.in), "RoundPrice(%v)", tt.in)
	}
}

func TestPair(t *testing.T) {
	assert.Equal(t, "EUR/USD", EURUSD.String())
	assert.Equal(t, "EURUSD", EURUSD.Symbol())
}

func TestClientConfig_WithDefaults(t *testing.T) {
	zero := ClientConfig{}.WithDefaults()
	assert.Equal(t, DefaultBaseURL, zero.BaseURL)
	assert.Equal(t, DefaultTimeout, zero.Timeout)

	cfg := ClientConfig{BaseURL: "http://x", Timeout: time.Second, MaxRetries: -3, AccountID: "A"}.WithDefaults()
	assert.Equal(t, "http://x", cfg.BaseURL)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, "A", cfg.AccountID)
}

func TestClientConfig_ZeroRetriesKept(t *testing.T) {
	cfg := ClientConfig{MaxRetries: 0}.WithDefaults()
	assert.Equal(t, 0, cfg.MaxRetries)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "unauthenticated", SessionUnauthenticated.String())
	assert.Equal(t, "authenticated", SessionAuthenticated.String())
}

func TestAccountSnapshot_OrZero(t *testing.T) {
	v := 12.5
	s := AccountSnapshot{Balance: &v}
	assert.Equal(t, 12.5, s.BalanceOrZero())
	assert.Equal(t, 0.0, s.EquityOrZero())
}
