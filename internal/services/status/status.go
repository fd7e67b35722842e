// Package status implements the liveness, readiness and status probes on top
// of the upstream FX client.
package status

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/domain"
)

// Client is the part of the FX client the probes need.
type Client interface {
	Login(ctx context.Context) error
	Logout(ctx context.Context)
	GetPrice(ctx context.Context, interval string) (float64, error)
	GetBalance(ctx context.Context) (domain.AccountSnapshot, error)
}

// ClientFactory builds a fresh client for every probe call.
type ClientFactory func() Client

// Status probe result.
type Status struct {
	OK      bool     `json:"ok"`
	TS      float64  `json:"ts"`
	Message *string  `json:"message"`
	Price   *float64 `json:"price"`
	Balance *float64 `json:"balance"`
	Equity  *float64 `json:"equity"`
}

// Service runs probes. Each call constructs its own client, so calls may run
// concurrently without sharing state.
type Service struct {
	newClient ClientFactory
	interval  string
	now       func() time.Time
	logger    *zap.Logger
}

// New creates a probe service.
func New(newClient ClientFactory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		newClient: newClient,
		interval:  domain.DefaultInterval,
		now:       time.Now,
		logger:    logger,
	}
}

// Health reports liveness without touching the upstream.
func (s *Service) Health() Status {
	return s.ok("healthy")
}

// Ready logs in and reads the price.
func (s *Service) Ready(ctx context.Context) Status {
	client := s.newClient()
	defer client.Logout(context.WithoutCancel(ctx))

	if err := client.Login(ctx); err != nil {
		return s.fail("readiness", err)
	}
	price, err := client.GetPrice(ctx, s.interval)
	if err != nil {
		return s.fail("readiness", err)
	}

	st := s.ok("ready")
	st.Price = &price
	return st
}

// Status reads the price and, when live, the balance inside a session.
// A failed balance read leaves balance and equity empty but keeps the price.
func (s *Service) Status(ctx context.Context, live bool) Status {
	client := s.newClient()

	if live {
		defer client.Logout(context.WithoutCancel(ctx))
		if err := client.Login(ctx); err != nil {
			return s.fail("status", err)
		}
	}

	price, err := client.GetPrice(ctx, s.interval)
	if err != nil {
		return s.fail("status", err)
	}

	st := Status{OK: true, TS: s.timestamp(), Price: &price}
	if !live {
		return st
	}

	snapshot, err := client.GetBalance(ctx)
	if err != nil {
		s.logger.Warn("balance unavailable", zap.Error(err))
		return st
	}
	balance := snapshot.BalanceOrZero()
	equity := snapshot.EquityOrZero()
	st.Balance = &balance
	st.Equity = &equity
	return st
}

func (s *Service) ok(message string) Status {
	return Status{OK: true, TS: s.timestamp(), Message: &message}
}

func (s *Service) fail(probe string, err error) Status {
	s.logger.Warn("probe failed", zap.String("probe", probe), zap.Error(err))
	message := err.Error()
	return Status{OK: false, TS: s.timestamp(), Message: &message}
}

func (s *Service) timestamp() float64 {
	return float64(s.now().UnixNano()) / float64(time.Second)
}
