package issue

import (
	"fmt"
	"strings"
)

// Patch is a partial update. Nil fields are left untouched. ID and CreatedAt
// are never patchable.
type Patch struct {
	Title           *string   `json:"title,omitempty"`
	Status          *Status   `json:"status,omitempty"`
	Assignee        *string   `json:"assignee,omitempty"`
	Severity        *int      `json:"severity,omitempty"`
	Priority        *Priority `json:"priority,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	UserDefinedRank *int      `json:"userDefinedRank,omitempty"`
}

// Set returns a pointer to v for building patches inline.
func Set[T any](v T) *T {
	return &v
}

// IsEmpty reports whether the patch would change nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Status == nil && p.Assignee == nil && p.Severity == nil &&
		p.Priority == nil && p.Tags == nil && p.UserDefinedRank == nil
}

// Validate rejects values that would break an issue.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errMissingTitle
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("unknown status %q", *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("unknown priority %q", *p.Priority)
	}
	return nil
}

// Apply returns a copy of i with every set field of p written over it.
func (i Issue) Apply(p Patch) Issue {
	out := i.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Assignee != nil {
		out.Assignee = *p.Assignee
	}
	if p.Severity != nil {
		out.Severity = *p.Severity
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Tags != nil {
		out.Tags = NormalizeTags(*p.Tags)
	}
	if p.UserDefinedRank != nil {
		out.UserDefinedRank = *p.UserDefinedRank
	}
	return out
}

// Capture records the current value of every field p would overwrite.
// Applying the result to i.Apply(p) restores those fields exactly.
func (i Issue) Capture(p Patch) Patch {
	var prev Patch
	if p.Title != nil {
		prev.Title = Set(i.Title)
	}
	if p.Status != nil {
		prev.Status = Set(i.Status)
	}
	if p.Assignee != nil {
		prev.Assignee = Set(i.Assignee)
	}
	if p.Severity != nil {
		prev.Severity = Set(i.Severity)
	}
	if p.Priority != nil {
		prev.Priority = Set(i.Priority)
	}
	if p.Tags != nil {
		// Non-nil so the restore encodes as [] rather than null.
		prev.Tags = Set(append([]string{}, i.Tags...))
	}
	if p.UserDefinedRank != nil {
		prev.UserDefinedRank = Set(i.UserDefinedRank)
	}
	return prev
}

// Fields lists the names of the fields the patch sets, for logging.
func (p Patch) Fields() []string {
	var names []string
	if p.Title != nil {
		names = append(names, "title")
	}
	if p.Status != nil {
		names = append(names, "status")
	}
	if p.Assignee != nil {
		names = append(names, "assignee")
	}
	if p.Severity != nil {
		names = append(names, "severity")
	}
	if p.Priority != nil {
		names = append(names, "priority")
	}
	if p.Tags != nil {
		names = append(names, "tags")
	}
	if p.UserDefinedRank != nil {
		names = append(names, "userDefinedRank")
	}
	return names
}
