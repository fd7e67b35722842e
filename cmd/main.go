// Command quasarfx serves liveness, readiness and EUR/USD status probes backed
// by the upstream FX trading API.
//
// Usage:
//
//	quasarfx --config config.yaml
//	quasarfx --listen :8080 --env-file .env
//
// Required environment variables (or .env entries):
//
//	USERNAME, PASSWORD, APP_KEY
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/config"
	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/clients"
	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/services/status"
	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/web"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if cfg.Credentials.Username == "" || cfg.Credentials.AppKey == "" {
		logger.Warn("USERNAME or APP_KEY is empty, upstream login will fail")
	}

	svc := status.New(func() status.Client {
		return clients.NewFXClient(cfg.Credentials, cfg.Client, logger)
	}, logger)
	server := web.NewServer(cfg.Listen, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(ctx)
	})

	logger.Info("started",
		zap.String("listen", cfg.Listen),
		zap.String("base_url", cfg.Client.BaseURL),
		zap.Int("max_retries", cfg.Client.MaxRetries))

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
