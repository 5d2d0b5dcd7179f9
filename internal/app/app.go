package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/issueboard/internal/backend"
	"github.com/five82/issueboard/internal/changes"
	"github.com/five82/issueboard/internal/clock"
	"github.com/five82/issueboard/internal/config"
	"github.com/five82/issueboard/internal/prefs"
	"github.com/five82/issueboard/internal/state"
	"github.com/five82/issueboard/internal/tracker"
	"github.com/five82/issueboard/internal/ui"
)

// Options configure the board application. Non-zero fields override the
// config file.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/issueboard/prefs.toml
	PollEvery   int    // seconds; zero uses config
	BackendAddr string
}

// Run boots the board TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery
	}
	if opts.BackendAddr != "" {
		cfg.BackendAddr = opts.BackendAddr
	}

	// The terminal belongs to Bubble Tea, so logs go to a file or nowhere.
	logger, closeLog, err := NewLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	repo, err := NewRepository(cfg, clock.Real(), logger)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}

	notices := make(chan string, 8)
	store := state.New(repo, state.Options{
		Logger:     logger,
		UndoWindow: cfg.UndoWindow(),
		OnChanges: func(batch []changes.Change) {
			select {
			case notices <- changes.Summary(batch):
			default:
				logger.Debug("live update notice dropped", "changes", len(batch))
			}
		},
	})
	defer store.Close()

	poller := StartPoller(ctx, store, clock.Real(), cfg.PollInterval(), logger)
	defer poller.Stop()

	logger.Info("board started", "backend", backendLabel(cfg), "poll", cfg.PollInterval(), "role", cfg.Role)
	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Role:      cfg.Role,
		Notices:   notices,
		Logger:    logger,
	})
}

// NewRepository returns an HTTP client for cfg.BackendAddr, or an in-process
// simulated backend when no address is configured.
func NewRepository(cfg config.Config, clk clock.Clock, logger *slog.Logger) (state.Repository, error) {
	if cfg.BackendAddr != "" {
		client, err := tracker.NewClient(cfg.BackendAddr)
		if err != nil {
			return nil, fmt.Errorf("init tracker client: %w", err)
		}
		return client, nil
	}
	return NewSimulated(cfg, clk, logger)
}

// NewSimulated builds the simulated backend described by cfg, seeded from
// cfg.SeedFile or the built-in demo issues.
func NewSimulated(cfg config.Config, clk clock.Clock, logger *slog.Logger) (*backend.Simulated, error) {
	seed := backend.DefaultIssues(clk.Now())
	if cfg.SeedFile != "" {
		loaded, err := backend.LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seed = loaded
	}

	rngSeed := cfg.Simulation.Seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	opts := backend.DefaultOptions()
	opts.Clock = clk
	opts.Logger = logger
	opts.Rand = rand.New(rand.NewPCG(rngSeed, rngSeed>>1))
	opts.Latency = cfg.Simulation.Latency()
	opts.FailureRate = cfg.Simulation.FailureRate
	opts.LiveUpdateChance = cfg.Simulation.LiveUpdateChance
	opts.LiveUpdateEvery = cfg.Simulation.LiveUpdateEvery()
	return backend.NewSimulated(seed, opts), nil
}

// NewLogger returns a text logger writing to path, creating parent
// directories. An empty path discards everything.
func NewLogger(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, file.Close, nil
}

func backendLabel(cfg config.Config) string {
	if cfg.BackendAddr == "" {
		return "simulated"
	}
	return cfg.BackendAddr
}
