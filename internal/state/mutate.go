package state

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/issueboard/internal/issue"
)

// pending is a mutation that has been applied locally and awaits the
// repository's verdict.
type pending struct {
	issueID  string
	patch    issue.Patch
	previous issue.Patch
	entryID  string // empty for undo mutations
}

// Mutate applies patch to issue id optimistically, records an undo entry and
// confirms the change with the repository. On rejection the issue's touched
// fields are restored, the undo entry is discarded and an error wrapping
// ErrUpdateFailed is returned. An unknown id is a no-op.
func (s *Store) Mutate(ctx context.Context, id string, patch issue.Patch) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	p, ok := s.beginLocked(s.clock.Now(), id, patch, false)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.complete(ctx, p)
}

// UndoLast restores the fields captured by the most recent mutation if it is
// still inside the undo window. It reports whether anything was restored;
// having nothing to undo is not an error. When the restoring write fails the
// entry goes back on the stack.
func (s *Store) UndoLast(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrClosed
	}
	now := s.clock.Now()
	s.housekeepLocked(now)

	entry, ok := s.undo.peek()
	if !ok || entry.Expired(now, s.window) {
		s.mu.Unlock()
		return false, nil
	}
	s.undo.pop()

	p, ok := s.beginLocked(now, entry.IssueID, entry.Previous, true)
	s.mu.Unlock()
	if !ok {
		s.logger.Info("undo target no longer present", "issue", entry.IssueID)
		return false, nil
	}

	if err := s.complete(ctx, p); err != nil {
		s.mu.Lock()
		if !s.closed {
			s.undo.push(entry)
		}
		s.mu.Unlock()
		return false, err
	}
	s.logger.Info("undo applied", "issue", entry.IssueID, "fields", entry.Previous.Fields())
	return true, nil
}

// UndoAvailable reports whether UndoLast would restore something now.
func (s *Store) UndoAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	s.housekeepLocked(now)
	entry, ok := s.undo.peek()
	return ok && !entry.Expired(now, s.window)
}

// beginLocked runs the synchronous half of a mutation: housekeeping, capture,
// undo push and optimistic apply. Nothing suspends between capture and apply.
func (s *Store) beginLocked(now time.Time, id string, patch issue.Patch, isUndo bool) (pending, bool) {
	s.housekeepLocked(now)

	idx := issue.Index(s.issues, id)
	if idx < 0 {
		return pending{}, false
	}

	p := pending{
		issueID:  id,
		patch:    patch,
		previous: s.issues[idx].Capture(patch),
	}
	if !isUndo {
		p.entryID = s.newID()
		s.undo.push(UndoEntry{
			ID:         p.entryID,
			IssueID:    id,
			Previous:   p.previous,
			CapturedAt: now,
		})
	}
	s.issues[idx] = s.issues[idx].Apply(patch)
	return p, true
}

// complete waits for the repository and settles the mutation.
func (s *Store) complete(ctx context.Context, p pending) error {
	confirmed, err := s.repo.Update(ctx, p.issueID, p.patch)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.closed {
			return fmt.Errorf("%w for issue %s: %w", ErrUpdateFailed, p.issueID, err)
		}
		if idx := issue.Index(s.issues, p.issueID); idx >= 0 {
			s.issues[idx] = s.issues[idx].Apply(p.previous)
		}
		if p.entryID != "" {
			s.undo.remove(p.entryID)
		}
		s.errMsg = msgUpdateFailed
		s.logger.Warn("issue update rejected, rolled back",
			"issue", p.issueID, "fields", p.patch.Fields(), "error", err)
		return fmt.Errorf("%w for issue %s: %w", ErrUpdateFailed, p.issueID, err)
	}

	if s.closed {
		return nil
	}
	if idx := issue.Index(s.issues, p.issueID); idx >= 0 {
		s.issues[idx] = confirm(s.issues[idx], confirmed)
	}
	s.lastSync = s.clock.Now()
	s.logger.Debug("issue update confirmed", "issue", p.issueID, "fields", p.patch.Fields())
	return nil
}
