package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/five82/issueboard/internal/clock"
	"github.com/five82/issueboard/internal/issue"
)

var (
	// ErrUpdateRejected is returned when the simulated backend refuses a write.
	ErrUpdateRejected = errors.New("update rejected")
	// ErrNotFound is returned for updates to an unknown issue id.
	ErrNotFound = errors.New("issue not found")
)

// Options tune the simulated backend. Zero durations and probabilities
// disable the corresponding behavior.
type Options struct {
	Clock            clock.Clock
	Rand             *rand.Rand
	Logger           *slog.Logger
	Latency          time.Duration
	FailureRate      float64
	LiveUpdateChance float64
	LiveUpdateEvery  time.Duration
	Assignees        []string
}

// DefaultOptions matches the demo behavior: half a second of latency, one in
// twenty writes rejected, and an external edit roughly every thirty seconds.
func DefaultOptions() Options {
	return Options{
		Latency:          500 * time.Millisecond,
		FailureRate:      0.05,
		LiveUpdateChance: 0.3,
		LiveUpdateEvery:  30 * time.Second,
		Assignees:        []string{"Alice", "Bob", "Charlie", "Diana"},
	}
}

// Simulated is an in-memory issue repository with injected latency, write
// failures and unsolicited edits standing in for other users.
type Simulated struct {
	clock  clock.Clock
	logger *slog.Logger
	opts   Options

	mu       sync.Mutex
	rng      *rand.Rand
	issues   []issue.Issue
	lastLive time.Time
}

// NewSimulated seeds a repository with issues.
func NewSimulated(seed []issue.Issue, opts Options) *Simulated {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	rng := opts.Rand
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>1))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Assignees) == 0 {
		opts.Assignees = DefaultOptions().Assignees
	}
	return &Simulated{
		clock:  clk,
		logger: logger,
		opts:   opts,
		rng:    rng,
		issues: issue.CloneAll(seed),
	}
}

// Fetch returns the full collection after the configured latency, sometimes
// editing one issue first to mimic another user.
func (s *Simulated) Fetch(ctx context.Context) ([]issue.Issue, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if s.opts.LiveUpdateChance > 0 && now.Sub(s.lastLive) > s.opts.LiveUpdateEvery &&
		s.rng.Float64() < s.opts.LiveUpdateChance {
		s.liveUpdateLocked()
		s.lastLive = now
	}
	return issue.CloneAll(s.issues), nil
}

// Update applies patch to issue id and returns the merged record.
func (s *Simulated) Update(ctx context.Context, id string, patch issue.Patch) (issue.Issue, error) {
	if err := patch.Validate(); err != nil {
		return issue.Issue{}, fmt.Errorf("update %s: %w", id, err)
	}
	if err := s.wait(ctx); err != nil {
		return issue.Issue{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.FailureRate > 0 && s.rng.Float64() < s.opts.FailureRate {
		return issue.Issue{}, fmt.Errorf("update %s: %w", id, ErrUpdateRejected)
	}
	idx := issue.Index(s.issues, id)
	if idx < 0 {
		return issue.Issue{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	s.issues[idx] = s.issues[idx].Apply(patch)
	return s.issues[idx].Clone(), nil
}

// Issues returns a copy of the backend's current collection.
func (s *Simulated) Issues() []issue.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return issue.CloneAll(s.issues)
}

func (s *Simulated) wait(ctx context.Context) error {
	if s.opts.Latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(s.opts.Latency):
		return nil
	}
}

// liveUpdateLocked changes the status, priority or assignee of one random
// issue. Picking the current value leaves the issue untouched.
func (s *Simulated) liveUpdateLocked() {
	if len(s.issues) == 0 {
		return
	}
	idx := s.rng.IntN(len(s.issues))
	target := &s.issues[idx]

	switch s.rng.IntN(3) {
	case 0:
		statuses := issue.Statuses()
		next := statuses[s.rng.IntN(len(statuses))]
		if next != target.Status {
			target.Status = next
			s.logger.Info("simulated live update", "issue", target.ID, "status", next)
		}
	case 1:
		priorities := issue.Priorities()
		next := priorities[s.rng.IntN(len(priorities))]
		if next != target.Priority {
			target.Priority = next
			s.logger.Info("simulated live update", "issue", target.ID, "priority", next)
		}
	default:
		next := s.opts.Assignees[s.rng.IntN(len(s.opts.Assignees))]
		if next != target.Assignee {
			target.Assignee = next
			s.logger.Info("simulated live update", "issue", target.ID, "assignee", next)
		}
	}
}
