package state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/five82/issueboard/internal/clock"
	"github.com/five82/issueboard/internal/issue"
)

var epoch = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type updateReply struct {
	issue issue.Issue
	err   error
}

// updateCall is a held Update waiting for the test to answer it.
type updateCall struct {
	id    string
	patch issue.Patch
	reply chan updateReply
}

// fakeRepo is an in-memory repository. With hold set, every Update is handed
// to the test on calls and blocks until answered.
type fakeRepo struct {
	mu        sync.Mutex
	issues    []issue.Issue
	fetchErr  error
	updateErr error
	fetchGate chan struct{}
	hold      bool
	calls     chan updateCall
}

func newFakeRepo(issues ...issue.Issue) *fakeRepo {
	return &fakeRepo{issues: issues, calls: make(chan updateCall, 8)}
}

func (f *fakeRepo) Fetch(ctx context.Context) ([]issue.Issue, error) {
	f.mu.Lock()
	gate := f.fetchGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return issue.CloneAll(f.issues), nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, patch issue.Patch) (issue.Issue, error) {
	f.mu.Lock()
	hold := f.hold
	f.mu.Unlock()

	if hold {
		call := updateCall{id: id, patch: patch, reply: make(chan updateReply, 1)}
		f.calls <- call
		r := <-call.reply
		return r.issue, r.err
	}
	return f.apply(id, patch)
}

// apply commits patch to the fake's own copy, as a real backend would.
func (f *fakeRepo) apply(id string, patch issue.Patch) (issue.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return issue.Issue{}, f.updateErr
	}
	idx := issue.Index(f.issues, id)
	if idx < 0 {
		return issue.Issue{}, fmt.Errorf("no issue %s", id)
	}
	f.issues[idx] = f.issues[idx].Apply(patch)
	return f.issues[idx].Clone(), nil
}

func (f *fakeRepo) set(fn func(f *fakeRepo)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeRepo) nextCall(t *testing.T) updateCall {
	t.Helper()
	select {
	case call := <-f.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Update call")
		return updateCall{}
	}
}

func sampleIssues() []issue.Issue {
	return []issue.Issue{
		{ID: "X", Title: "Login Bug", Status: issue.StatusBacklog, Assignee: "Alice", Severity: 3,
			Priority: issue.PriorityHigh, Tags: []string{"auth"}, CreatedAt: epoch.Add(-96 * time.Hour)},
		{ID: "Y", Title: "Dark mode", Status: issue.StatusInProgress, Assignee: "Bob", Severity: 1,
			Priority: issue.PriorityLow, Tags: []string{"ui"}, CreatedAt: epoch.Add(-24 * time.Hour)},
	}
}

type fixture struct {
	clock *clock.FakeClock
	repo  *fakeRepo
	store *Store
}

func newFixture(t *testing.T, opts Options) fixture {
	t.Helper()
	clk := clock.Fake(epoch)
	repo := newFakeRepo(sampleIssues()...)

	seq := 0
	opts.Clock = clk
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.NewID == nil {
		opts.NewID = func() string {
			seq++
			return fmt.Sprintf("undo-%d", seq)
		}
	}
	s := New(repo, opts)
	if err := s.FetchNow(context.Background()); err != nil {
		t.Fatalf("initial FetchNow: %v", err)
	}
	return fixture{clock: clk, repo: repo, store: s}
}

func (fx fixture) issue(t *testing.T, id string) issue.Issue {
	t.Helper()
	it, ok := fx.store.Issue(id)
	if !ok {
		t.Fatalf("issue %s missing from store", id)
	}
	return it
}

// mutateAsync runs Mutate in a goroutine and returns its result channel.
func (fx fixture) mutateAsync(id string, patch issue.Patch) <-chan error {
	done := make(chan error, 1)
	go func() { done <- fx.store.Mutate(context.Background(), id, patch) }()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for operation")
		return nil
	}
}
