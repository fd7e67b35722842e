package status

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/domain"
)

type fakeClient struct {
	loginErr   error
	price      float64
	priceErr   error
	snapshot   domain.AccountSnapshot
	balanceErr error

	calls []string
}

func (f *fakeClient) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	return f.loginErr
}

func (f *fakeClient) Logout(context.Context) {
	f.calls = append(f.calls, "logout")
}

func (f *fakeClient) GetPrice(_ context.Context, interval string) (float64, error) {
	f.calls = append(f.calls, "price:"+interval)
	return f.price, f.priceErr
}

func (f *fakeClient) GetBalance(context.Context) (domain.AccountSnapshot, error) {
	f.calls = append(f.calls, "balance")
	return f.snapshot, f.balanceErr
}

func newTestService(c *fakeClient) *Service {
	s := New(func() Client { return c }, nil)
	s.now = func() time.Time { return time.Unix(1700000000, 500000000) }
	return s
}

func ptr[T any](v T) *T {
	return &v
}

func TestService_Health(t *testing.T) {
	c := &fakeClient{}
	st := newTestService(c).Health()
	assert.True(t, st.OK)
	assert.Equal(t, "healthy", *st.Message)
	assert.Equal(t, 1700000000.5, st.TS)
	assert.Empty(t, c.calls)
}

func TestService_Ready(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		c := &fakeClient{price: 1.08123}
		st := newTestService(c).Ready(context.Background())
		assert.True(t, st.OK)
		assert.Equal(t, "ready", *st.Message)
		assert.Equal(t, 1.08123, *st.Price)
		assert.Equal(t, []string{"login", "price:1m", "logout"}, c.calls)
	})

	t.Run("login failure still logs out", func(t *testing.T) {
		c := &fakeClient{loginErr: errors.Wrap(domain.ErrRequestFailed, "POST /session")}
		st := newTestService(c).Ready(context.Background())
		assert.False(t, st.OK)
		assert.Contains(t, *st.Message, "request failed")
		assert.Nil(t, st.Price)
		assert.Equal(t, []string{"login", "logout"}, c.calls)
	})

	t.Run("price failure still logs out", func(t *testing.T) {
		c := &fakeClient{priceErr: domain.ErrUnexpectedPayload}
		st := newTestService(c).Ready(context.Background())
		assert.False(t, st.OK)
		assert.Equal(t, "unexpected payload", *st.Message)
		assert.Equal(t, []string{"login", "price:1m", "logout"}, c.calls)
	})
}

func TestService_Status(t *testing.T) {
	t.Run("live with balance", func(t *testing.T) {
		c := &fakeClient{price: 1.1, snapshot: domain.AccountSnapshot{Balance: ptr(50.0), Equity: ptr(49.5)}}
		st := newTestService(c).Status(context.Background(), true)
		require.True(t, st.OK)
		assert.Nil(t, st.Message)
		assert.Equal(t, 1.1, *st.Price)
		assert.Equal(t, 50.0, *st.Balance)
		assert.Equal(t, 49.5, *st.Equity)
		assert.Equal(t, []string{"login", "price:1m", "balance", "logout"}, c.calls)
	})

	t.Run("missing equity reads as zero", func(t *testing.T) {
		c := &fakeClient{price: 1.1, snapshot: domain.AccountSnapshot{Balance: ptr(50.0)}}
		st := newTestService(c).Status(context.Background(), true)
		assert.Equal(t, 50.0, *st.Balance)
		assert.Equal(t, 0.0, *st.Equity)
	})

	t.Run("balance failure keeps price", func(t *testing.T) {
		c := &fakeClient{price: 1.1, balanceErr: domain.ErrRequestFailed}
		st := newTestService(c).Status(context.Background(), true)
		assert.True(t, st.OK)
		assert.Equal(t, 1.1, *st.Price)
		assert.Nil(t, st.Balance)
		assert.Nil(t, st.Equity)
		assert.Equal(t, "logout", c.calls[len(c.calls)-1])
	})

	t.Run("not live skips session and balance", func(t *testing.T) {
		c := &fakeClient{price: 1.2}
		st := newTestService(c).Status(context.Background(), false)
		assert.True(t, st.OK)
		assert.Equal(t, 1.2, *st.Price)
		assert.Nil(t, st.Balance)
		assert.Equal(t, []string{"price:1m"}, c.calls)
	})

	t.Run("login failure", func(t *testing.T) {
		c := &fakeClient{loginErr: domain.ErrAuthenticationFailed}
		st := newTestService(c).Status(context.Background(), true)
		assert.False(t, st.OK)
		assert.Equal(t, "authentication failed", *st.Message)
		assert.Equal(t, []string{"login", "logout"}, c.calls)
	})

	t.Run("price failure", func(t *testing.T) {
		c := &fakeClient{priceErr: domain.ErrRequestFailed}
		st := newTestService(c).Status(context.Background(), true)
		assert.False(t, st.OK)
		assert.Nil(t, st.Price)
		assert.Equal(t, []string{"login", "price:1m", "logout"}, c.calls)
	})
}
