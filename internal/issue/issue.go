package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Status is the board column an issue lives in.
type Status string

const (
	StatusBacklog    Status = "Backlog"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists every status in board order.
func Statuses() []Status {
	return []Status{StatusBacklog, StatusInProgress, StatusDone}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return slices.Contains(Statuses(), s)
}

// Next returns the status to the right of s on the board. The last column
// returns itself.
func (s Status) Next() Status {
	all := Statuses()
	i := slices.Index(all, s)
	if i < 0 || i == len(all)-1 {
		return s
	}
	return all[i+1]
}

// Prev returns the status to the left of s on the board.
func (s Status) Prev() Status {
	all := Statuses()
	i := slices.Index(all, s)
	if i <= 0 {
		return s
	}
	return all[i-1]
}

// Priority is the manually assigned urgency label.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return slices.Contains(Priorities(), p)
}

// Issue mirrors the issue payload exchanged with the backend.
type Issue struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Status          Status    `json:"status"`
	Assignee        string    `json:"assignee"`
	Severity        int       `json:"severity"`
	Priority        Priority  `json:"priority"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"createdAt"`
	UserDefinedRank int       `json:"userDefinedRank,omitempty"`
}

var (
	errMissingID    = errors.New("issue id is empty")
	errMissingTitle = errors.New("issue title is empty")
)

// Validate checks the fields the board depends on.
func (i Issue) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errMissingID
	}
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("issue %s: %w", i.ID, errMissingTitle)
	}
	if !i.Status.Valid() {
		return fmt.Errorf("issue %s: unknown status %q", i.ID, i.Status)
	}
	if !i.Priority.Valid() {
		return fmt.Errorf("issue %s: unknown priority %q", i.ID, i.Priority)
	}
	return nil
}

// Clone returns a copy that shares no memory with i.
func (i Issue) Clone() Issue {
	i.Tags = slices.Clone(i.Tags)
	return i
}

// NormalizeTags trims labels, drops empty ones and collapses duplicates while
// keeping first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// CloneAll deep-copies a collection.
func CloneAll(issues []Issue) []Issue {
	if len(issues) == 0 {
		return nil
	}
	dup := make([]Issue, len(issues))
	for idx, it := range issues {
		dup[idx] = it.Clone()
	}
	return dup
}

// Index returns the position of id in issues, or -1.
func Index(issues []Issue, id string) int {
	return slices.IndexFunc(issues, func(it Issue) bool { return it.ID == id })
}
