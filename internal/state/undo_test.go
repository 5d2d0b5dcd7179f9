package state

import (
	"testing"
	"time"
)

func TestHistoryPrune(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var h history
	h.push(UndoEntry{ID: "a", CapturedAt: base})
	h.push(UndoEntry{ID: "b", CapturedAt: base.Add(2 * time.Second)})
	h.push(UndoEntry{ID: "c", CapturedAt: base.Add(4 * time.Second)})

	tests := []struct {
		name    string
		at      time.Duration
		dropped int
		top     string
	}{
		{"nothing expired", 5 * time.Second, 0, "c"},
		{"oldest just past window", 5*time.Second + time.Nanosecond, 1, "c"},
		{"all expired", 10 * time.Second, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.prune(base.Add(tt.at), 5*time.Second)
			if got != tt.dropped {
				t.Fatalf("prune dropped %d, want %d", got, tt.dropped)
			}
			top, ok := h.peek()
			if tt.top == "" {
				if ok {
					t.Fatalf("expected empty history, top is %q", top.ID)
				}
				return
			}
			if !ok || top.ID != tt.top {
				t.Fatalf("top = %q (ok=%v), want %q", top.ID, ok, tt.top)
			}
		})
	}
}

func TestHistoryRemoveFromMiddle(t *testing.T) {
	var h history
	for _, id := range []string{"a", "b", "c"} {
		h.push(UndoEntry{ID: id})
	}
	if !h.remove("b") {
		t.Fatal("remove(b) = false")
	}
	if h.remove("missing") {
		t.Fatal("remove(missing) = true")
	}

	var order []string
	for h.len() > 0 {
		e, _ := h.pop()
		order = append(order, e.ID)
	}
	if len(order) != 2 || order[0] != "c" || order[1] != "a" {
		t.Fatalf("pop order = %v, want [c a]", order)
	}
}

func TestUndoEntryDeadline(t *testing.T) {
	at := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	e := UndoEntry{CapturedAt: at}
	if got := e.Deadline(DefaultUndoWindow); !got.Equal(at.Add(5 * time.Second)) {
		t.Fatalf("Deadline = %v", got)
	}
	if e.Expired(at.Add(DefaultUndoWindow), DefaultUndoWindow) {
		t.Fatal("entry expired exactly at the window boundary")
	}
}
