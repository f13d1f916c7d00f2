// Package main is the entry point for the company lookup HTTP API.
// It serves the same lookup as the CLI for callers that cannot use a prompt.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fleveque/company-lookup/internal/config"
	"github.com/fleveque/company-lookup/internal/logging"
	"github.com/fleveque/company-lookup/internal/provider"
	"github.com/fleveque/company-lookup/internal/server"
)

func main() {
	// run() is separate so deferred cleanup executes before os.Exit.
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("COMPANY_LOOKUP_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Amplemarket.APIKey == "" {
		logger.Warn("AMPLEMARKET_API_KEY is not set; every lookup will fail")
	}
	if len(cfg.Auth.APIKeys) == 0 {
		logger.Warn("no auth.api_keys configured; the API is open to any caller")
	}

	p := provider.NewAmplemarketProvider(
		cfg.Amplemarket.APIKey,
		cfg.Amplemarket.BaseURL,
		cfg.Amplemarket.Timeout,
		logger.Named("amplemarket"),
	)

	srv := server.New(cfg, p, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	// Give in-flight lookups 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
