package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/deepakjoshi9239/finance-tracker/internal/auth"
	"github.com/deepakjoshi9239/finance-tracker/internal/config"
	"github.com/deepakjoshi9239/finance-tracker/internal/infra"
	"github.com/deepakjoshi9239/finance-tracker/internal/logging"
	"github.com/deepakjoshi9239/finance-tracker/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Fail closed on a missing or weak signing secret before opening any connection.
	if _, err := auth.NewSecret(cfg.JWTSecret); err != nil {
		logger.Error("invalid signing secret", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	stores, err := infra.Open(ctx, cfg.DatabaseURL, cfg.RedisURL, cfg.AppName)
	if err != nil {
		logger.Error("open stores", "error", err)
		os.Exit(1)
	}
	defer stores.Close(logger)

	srv, err := server.New(cfg, stores.DB, stores.Cache, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()
	logger.Info("server starting",
		slog.String("app", cfg.AppName),
		slog.String("env", cfg.AppEnv),
		slog.String("addr", cfg.Address()),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
