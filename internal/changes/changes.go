package changes

import (
	"fmt"
	"strconv"

	"github.com/five82/issueboard/internal/issue"
)

// Kind classifies a detected change.
type Kind int

const (
	KindField Kind = iota
	KindCreated
	KindRemoved
)

// Field names reported for KindField changes.
const (
	FieldStatus   = "status"
	FieldPriority = "priority"
	FieldAssignee = "assignee"
	FieldSeverity = "severity"
)

// Change describes one observable difference between two snapshots.
type Change struct {
	Kind    Kind
	IssueID string
	Title   string
	Field   string // set for KindField
	Value   string // new value for KindField
}

// String renders the change for a notification line.
func (c Change) String() string {
	switch c.Kind {
	case KindCreated:
		return fmt.Sprintf("New issue created: %q", c.Title)
	case KindRemoved:
		return fmt.Sprintf("Issue removed: %q", c.Title)
	}
	switch c.Field {
	case FieldStatus:
		return fmt.Sprintf("%q moved to %s", c.Title, c.Value)
	case FieldAssignee:
		return fmt.Sprintf("%q assigned to %s", c.Title, c.Value)
	default:
		return fmt.Sprintf("%q %s changed to %s", c.Title, c.Field, c.Value)
	}
}

// Diff compares two snapshots by issue ID. Field changes come first in
// newer's order, then creations, then removals in older's order.
func Diff(older, newer []issue.Issue) []Change {
	oldByID := make(map[string]issue.Issue, len(older))
	for _, it := range older {
		oldByID[it.ID] = it
	}
	newByID := make(map[string]struct{}, len(newer))
	for _, it := range newer {
		newByID[it.ID] = struct{}{}
	}

	var out []Change
	for _, cur := range newer {
		prev, ok := oldByID[cur.ID]
		if !ok {
			continue
		}
		if prev.Status != cur.Status {
			out = append(out, fieldChange(cur, FieldStatus, string(cur.Status)))
		}
		if prev.Priority != cur.Priority {
			out = append(out, fieldChange(cur, FieldPriority, string(cur.Priority)))
		}
		if prev.Assignee != cur.Assignee {
			out = append(out, fieldChange(cur, FieldAssignee, cur.Assignee))
		}
		if prev.Severity != cur.Severity {
			out = append(out, fieldChange(cur, FieldSeverity, strconv.Itoa(cur.Severity)))
		}
	}

	for _, cur := range newer {
		if _, ok := oldByID[cur.ID]; !ok {
			out = append(out, Change{Kind: KindCreated, IssueID: cur.ID, Title: cur.Title})
		}
	}

	for _, prev := range older {
		if _, ok := newByID[prev.ID]; !ok {
			out = append(out, Change{Kind: KindRemoved, IssueID: prev.ID, Title: prev.Title})
		}
	}
	return out
}

func fieldChange(it issue.Issue, field, value string) Change {
	return Change{Kind: KindField, IssueID: it.ID, Title: it.Title, Field: field, Value: value}
}

// Summary condenses a batch into one notification line. Empty input yields "".
func Summary(batch []Change) string {
	switch len(batch) {
	case 0:
		return ""
	case 1:
		return "Live update: " + batch[0].String()
	default:
		return fmt.Sprintf("%d live updates detected", len(batch))
	}
}
