package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/five82/issueboard/internal/app"
	"github.com/five82/issueboard/internal/clock"
	"github.com/five82/issueboard/internal/config"
	"github.com/five82/issueboard/internal/tracker"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (default ~/.config/issueboard/config.toml)")
	listen := flag.String("listen", "", "address to serve the issue API on (default 127.0.0.1:7490)")
	seedFile := flag.String("seed-file", "", "JSONC file with the initial issues")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boardd: load config: %v\n", err)
		return 1
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *seedFile != "" {
		cfg.SeedFile = *seedFile
	}

	repo, err := app.NewSimulated(cfg, clock.Real(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boardd: %v\n", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           tracker.NewHandler(repo, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("boardd listening", "addr", cfg.Listen, "issues", len(repo.Issues()),
			"failure_rate", cfg.Simulation.FailureRate, "latency", cfg.Simulation.Latency())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
			return 1
		}
		logger.Info("boardd stopped")
	}
	return 0
}
