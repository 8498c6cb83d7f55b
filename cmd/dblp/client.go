package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/matsen/dblp/internal/config"
	"github.com/matsen/dblp/internal/dblp"
)

// newClient builds a dblp client from the configuration file, .env,
// and environment overrides.
func newClient() (*dblp.Client, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	}

	opts := []dblp.ClientOption{
		dblp.WithBaseURL(cfg.BaseURL),
		dblp.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}),
		dblp.WithMaxWorkers(cfg.MaxWorkers),
		dblp.WithLogger(logger),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, dblp.WithRateLimit(cfg.RateLimit))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, dblp.WithUserAgent(cfg.UserAgent))
	}
	return dblp.NewClient(opts...), nil
}

// commandContext returns a context cancelled by SIGINT/SIGTERM so an
// in-flight sweep can be abandoned cleanly.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
