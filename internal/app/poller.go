package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/issueboard/internal/clock"
	"github.com/five82/issueboard/internal/state"
)

const defaultPollInterval = 10 * time.Second

// Fetcher is the part of the store the poller drives.
type Fetcher interface {
	FetchNow(ctx context.Context) error
}

// Poller refreshes a store at a fixed cadence until stopped.
type Poller struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartPoller launches a background goroutine that fetches once immediately
// and then on every tick. Failures are logged and retried on the next tick.
// It returns immediately.
func StartPoller(ctx context.Context, store Fetcher, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Poller{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(p.done)
		ticker := clk.NewTicker(interval)
		defer ticker.Stop()

		for {
			if !refresh(ctx, store, logger) {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-p.stop:
				return
			case <-ticker.C:
			}
		}
	}()
	return p
}

// Stop cancels the schedule and waits for the loop to exit. A fetch already
// in flight runs to completion on the caller's context. Safe to call more
// than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}

// refresh runs one poll and reports whether polling should continue.
func refresh(ctx context.Context, store Fetcher, logger *slog.Logger) bool {
	err := store.FetchNow(ctx)
	switch {
	case err == nil:
		return true
	case errors.Is(err, state.ErrClosed):
		logger.Debug("store closed, poller exiting")
		return false
	case ctx.Err() != nil:
		return false
	default:
		logger.Warn("issue poll failed", "error", err)
		return true
	}
}
