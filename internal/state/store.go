package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/issueboard/internal/changes"
	"github.com/five82/issueboard/internal/clock"
	"github.com/five82/issueboard/internal/issue"
	"github.com/five82/issueboard/internal/view"
)

// Repository is the issue service the store synchronizes with.
type Repository interface {
	Fetch(ctx context.Context) ([]issue.Issue, error)
	Update(ctx context.Context, id string, patch issue.Patch) (issue.Issue, error)
}

// Options configure a Store. Zero values pick the defaults.
type Options struct {
	Clock      clock.Clock
	Logger     *slog.Logger
	UndoWindow time.Duration
	Merge      MergeFunc

	// OnChanges receives the differences a poll brought in, excluding the
	// very first load. It is called without the store lock held.
	OnChanges func([]changes.Change)

	// NewID generates undo entry ids. Defaults to random UUIDs.
	NewID func() string
}

// Snapshot is a point-in-time copy of the store for rendering.
type Snapshot struct {
	Issues   []issue.Issue
	Visible  []issue.Issue // filtered and priority-sorted at Now
	Criteria view.Criteria
	Loading  bool
	Err      string
	LastSync time.Time
	Now      time.Time

	// Undo is the entry UndoLast would restore, nil when none is eligible.
	Undo         *UndoEntry
	UndoDeadline time.Time
}

// UndoRemaining returns how long the newest undo entry stays usable.
func (s Snapshot) UndoRemaining() time.Duration {
	if s.Undo == nil {
		return 0
	}
	return max(s.UndoDeadline.Sub(s.Now), 0)
}

// Store owns the canonical issue collection and coordinates polling,
// optimistic mutations and undo.
type Store struct {
	repo      Repository
	clock     clock.Clock
	logger    *slog.Logger
	window    time.Duration
	merge     MergeFunc
	onChanges func([]changes.Change)
	newID     func() string

	mu       sync.Mutex
	issues   []issue.Issue
	criteria view.Criteria
	fetching int
	errMsg   string
	lastSync time.Time
	synced   bool
	undo     history
	closed   bool
}

// New builds an empty store backed by repo.
func New(repo Repository, opts Options) *Store {
	s := &Store{
		repo:      repo,
		clock:     opts.Clock,
		logger:    opts.Logger,
		window:    opts.UndoWindow,
		merge:     opts.Merge,
		onChanges: opts.OnChanges,
		newID:     opts.NewID,
	}
	if s.clock == nil {
		s.clock = clock.Real()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.window <= 0 {
		s.window = DefaultUndoWindow
	}
	if s.merge == nil {
		s.merge = ReplaceWithFetched
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// FetchNow pulls a full snapshot from the repository. On success it replaces
// the collection through the merge function; on failure the collection is
// left as is and the error message is set.
func (s *Store) FetchNow(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.fetching++
	s.errMsg = ""
	s.mu.Unlock()

	fetched, err := s.repo.Fetch(ctx)

	s.mu.Lock()
	s.fetching--
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		s.errMsg = msgFetchFailed
		s.mu.Unlock()
		s.logger.Warn("issue fetch failed", "error", err)
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	previous := s.issues
	s.issues = s.merge(previous, issue.CloneAll(fetched))
	s.lastSync = s.clock.Now()
	first := !s.synced
	s.synced = true

	var diff []changes.Change
	if !first && s.onChanges != nil {
		diff = changes.Diff(previous, s.issues)
	}
	count := len(s.issues)
	s.mu.Unlock()

	s.logger.Debug("issues synced", "count", count, "changes", len(diff))
	if len(diff) > 0 {
		s.onChanges(diff)
	}
	return nil
}

// SetSearch sets the free-text search term.
func (s *Store) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Search = term
}

// SetAssignee restricts the view to one assignee; "" clears it.
func (s *Store) SetAssignee(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Assignee = name
}

// SetSeverity restricts the view to one severity; nil clears it.
func (s *Store) SetSeverity(level *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level == nil {
		s.criteria.Severity = nil
		return
	}
	v := *level
	s.criteria.Severity = &v
}

// ClearFilters resets search, assignee and severity.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = view.Criteria{}
}

// ClearError dismisses the current error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// Issue returns the local copy of one issue.
func (s *Store) Issue(id string) (issue.Issue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := issue.Index(s.issues, id)
	if idx < 0 {
		return issue.Issue{}, false
	}
	return s.issues[idx].Clone(), true
}

// Visible returns the filtered, priority-sorted issues.
func (s *Store) Visible() []issue.Issue {
	return s.Snapshot().Visible
}

// Snapshot returns a copy of the current state. Expired undo entries are
// evicted first.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.housekeepLocked(now)

	snap := Snapshot{
		Issues:   issue.CloneAll(s.issues),
		Criteria: s.criteria,
		Loading:  s.fetching > 0,
		Err:      s.errMsg,
		LastSync: s.lastSync,
		Now:      now,
	}
	if s.criteria.Severity != nil {
		v := *s.criteria.Severity
		snap.Criteria.Severity = &v
	}
	snap.Visible = view.Visible(snap.Issues, snap.Criteria, now)
	if entry, ok := s.undo.peek(); ok {
		snap.Undo = &entry
		snap.UndoDeadline = entry.Deadline(s.window)
	}
	return snap
}

// Close detaches the store. Repository calls still in flight complete, but
// their results no longer touch the store.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Store) housekeepLocked(now time.Time) {
	if dropped := s.undo.prune(now, s.window); dropped > 0 {
		s.logger.Debug("expired undo entries dropped", "count", dropped)
	}
}
