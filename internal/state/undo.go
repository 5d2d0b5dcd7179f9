package state

import (
	"slices"
	"time"

	"github.com/five82/issueboard/internal/issue"
)

// DefaultUndoWindow is how long a captured previous state stays restorable.
const DefaultUndoWindow = 5 * time.Second

// UndoEntry holds the fields of one issue as they were immediately before a
// mutation.
type UndoEntry struct {
	ID         string
	IssueID    string
	Previous   issue.Patch
	CapturedAt time.Time
}

// Expired reports whether the entry is older than window at now.
func (e UndoEntry) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(e.CapturedAt) > window
}

// Deadline is the last instant the entry can be undone.
func (e UndoEntry) Deadline(window time.Duration) time.Time {
	return e.CapturedAt.Add(window)
}

// history is a LIFO of undo entries, oldest first. Callers prune before every
// read or write.
type history struct {
	entries []UndoEntry
}

// prune drops expired entries and returns how many were removed.
func (h *history) prune(now time.Time, window time.Duration) int {
	before := len(h.entries)
	h.entries = slices.DeleteFunc(h.entries, func(e UndoEntry) bool {
		return e.Expired(now, window)
	})
	return before - len(h.entries)
}

func (h *history) push(e UndoEntry) {
	h.entries = append(h.entries, e)
}

func (h *history) peek() (UndoEntry, bool) {
	if len(h.entries) == 0 {
		return UndoEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *history) pop() (UndoEntry, bool) {
	e, ok := h.peek()
	if ok {
		h.entries = h.entries[:len(h.entries)-1]
	}
	return e, ok
}

// remove deletes the entry with id wherever it sits in the stack.
func (h *history) remove(id string) bool {
	idx := slices.IndexFunc(h.entries, func(e UndoEntry) bool { return e.ID == id })
	if idx < 0 {
		return false
	}
	h.entries = slices.Delete(h.entries, idx, idx+1)
	return true
}

func (h *history) len() int {
	return len(h.entries)
}
