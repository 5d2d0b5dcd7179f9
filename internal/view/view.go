package view

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/five82/issueboard/internal/issue"
)

const day = 24 * time.Hour

// Criteria narrows the board to matching issues. The zero value matches
// everything.
type Criteria struct {
	Search   string
	Assignee string
	Severity *int // nil matches any severity
}

// IsZero reports whether the criteria filter nothing out.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Assignee == "" && c.Severity == nil
}

// DaysSince returns whole days elapsed between created and now, rounded down.
// A created time after now yields a negative count.
func DaysSince(created, now time.Time) int {
	elapsed := now.Sub(created)
	days := elapsed / day
	if elapsed%day < 0 {
		days--
	}
	return int(days)
}

// PriorityScore ranks an issue: severity dominates, age pulls it down one
// point per day, and the manual rank is added on top.
func PriorityScore(it issue.Issue, now time.Time) int {
	return it.Severity*10 - DaysSince(it.CreatedAt, now) + it.UserDefinedRank
}

// SortByPriority returns a new slice ordered by descending score, newest
// first on ties. Equal keys keep their input order.
func SortByPriority(issues []issue.Issue, now time.Time) []issue.Issue {
	type scored struct {
		issue issue.Issue
		score int
	}
	ranked := make([]scored, len(issues))
	for i, it := range issues {
		ranked[i] = scored{issue: it, score: PriorityScore(it, now)}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return b.issue.CreatedAt.Compare(a.issue.CreatedAt)
	})

	out := make([]issue.Issue, len(ranked))
	for i, r := range ranked {
		out[i] = r.issue
	}
	return out
}

// Filter keeps the issues matching c, preserving their relative order.
func Filter(issues []issue.Issue, c Criteria) []issue.Issue {
	fold := cases.Fold()
	needle := fold.String(c.Search)

	out := make([]issue.Issue, 0, len(issues))
	for _, it := range issues {
		if needle != "" && !matchesSearch(fold, it, needle) {
			continue
		}
		if c.Assignee != "" && it.Assignee != c.Assignee {
			continue
		}
		if c.Severity != nil && it.Severity != *c.Severity {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesSearch(fold cases.Caser, it issue.Issue, needle string) bool {
	if strings.Contains(fold.String(it.Title), needle) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(fold.String(tag), needle) {
			return true
		}
	}
	return false
}

// Visible is the list the board renders: filtered, then sorted with a single
// now so one render pass is consistent.
func Visible(issues []issue.Issue, c Criteria, now time.Time) []issue.Issue {
	return SortByPriority(Filter(issues, c), now)
}

// GroupByStatus splits an already ordered list into board columns, keeping
// the order within each column.
func GroupByStatus(issues []issue.Issue) map[issue.Status][]issue.Issue {
	columns := make(map[issue.Status][]issue.Issue, len(issue.Statuses()))
	for _, it := range issues {
		columns[it.Status] = append(columns[it.Status], it)
	}
	return columns
}

// Assignees returns the distinct non-empty assignees, sorted.
func Assignees(issues []issue.Issue) []string {
	var names []string
	for _, it := range issues {
		if it.Assignee != "" {
			names = append(names, it.Assignee)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Severities returns the distinct severities, ascending.
func Severities(issues []issue.Issue) []int {
	levels := make([]int, 0, len(issues))
	for _, it := range issues {
		levels = append(levels, it.Severity)
	}
	slices.Sort(levels)
	return slices.Compact(levels)
}
