package backend

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tailscale/hujson"

	"github.com/five82/issueboard/internal/issue"
)

// LoadSeed reads a JSON (comments and trailing commas allowed) array of
// issues. Tags are normalized and every record is validated.
func LoadSeed(path string) ([]issue.Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed data already in memory.
func ParseSeed(data []byte) ([]issue.Issue, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var issues []issue.Issue
	if err := json.Unmarshal(standardized, &issues); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[string]struct{}, len(issues))
	for i := range issues {
		issues[i].Tags = issue.NormalizeTags(issues[i].Tags)
		if err := issues[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		if _, dup := seen[issues[i].ID]; dup {
			return nil, fmt.Errorf("seed entry %d: duplicate id %q", i, issues[i].ID)
		}
		seen[issues[i].ID] = struct{}{}
	}
	return issues, nil
}

// DefaultIssues is the built-in demo data set, dated relative to now.
func DefaultIssues(now time.Time) []issue.Issue {
	ago := func(days int) time.Time { return now.Add(-time.Duration(days) * 24 * time.Hour) }
	return []issue.Issue{
		{ID: "1", Title: "Login Bug", Status: issue.StatusBacklog, Assignee: "Alice", Severity: 3,
			Priority: issue.PriorityHigh, Tags: []string{"auth", "bug"}, CreatedAt: ago(4)},
		{ID: "2", Title: "Dashboard loads slowly", Status: issue.StatusInProgress, Assignee: "Bob", Severity: 2,
			Priority: issue.PriorityMedium, Tags: []string{"performance"}, CreatedAt: ago(9)},
		{ID: "3", Title: "Add dark mode", Status: issue.StatusBacklog, Assignee: "Charlie", Severity: 1,
			Priority: issue.PriorityLow, Tags: []string{"ui", "theme"}, CreatedAt: ago(2)},
		{ID: "4", Title: "Payment webhook retries", Status: issue.StatusInProgress, Assignee: "Diana", Severity: 5,
			Priority: issue.PriorityHigh, Tags: []string{"payments", "backend"}, CreatedAt: ago(1)},
		{ID: "5", Title: "Update onboarding copy", Status: issue.StatusDone, Assignee: "Alice", Severity: 1,
			Priority: issue.PriorityLow, Tags: []string{"content"}, CreatedAt: ago(14)},
		{ID: "6", Title: "Search ignores tags", Status: issue.StatusBacklog, Assignee: "Bob", Severity: 3,
			Priority: issue.PriorityMedium, Tags: []string{"search", "bug"}, CreatedAt: ago(6), UserDefinedRank: 4},
		{ID: "7", Title: "Session expires too early", Status: issue.StatusDone, Assignee: "Diana", Severity: 4,
			Priority: issue.PriorityHigh, Tags: []string{"auth"}, CreatedAt: ago(20)},
		{ID: "8", Title: "Export board to CSV", Status: issue.StatusBacklog, Assignee: "Charlie", Severity: 2,
			Priority: issue.PriorityLow, Tags: []string{"feature"}, CreatedAt: ago(3)},
	}
}
