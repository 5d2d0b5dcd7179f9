package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/issueboard/internal/config"
	"github.com/five82/issueboard/internal/issue"
	"github.com/five82/issueboard/internal/prefs"
	"github.com/five82/issueboard/internal/state"
)

// memRepo answers immediately from memory.
type memRepo struct {
	mu     sync.Mutex
	issues []issue.Issue
	fail   bool
}

func (r *memRepo) Fetch(context.Context) ([]issue.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return issue.CloneAll(r.issues), nil
}

func (r *memRepo) Update(_ context.Context, id string, patch issue.Patch) (issue.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return issue.Issue{}, errors.New("rejected")
	}
	idx := issue.Index(r.issues, id)
	if idx < 0 {
		return issue.Issue{}, errors.New("not found")
	}
	r.issues[idx] = r.issues[idx].Apply(patch)
	return r.issues[idx].Clone(), nil
}

func (r *memRepo) status(id string) issue.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.issues[issue.Index(r.issues, id)].Status
}

type harness struct {
	repo      *memRepo
	store     *state.Store
	prefsPath string
	notices   chan string
}

func newHarness(t *testing.T, role string) (harness, Model) {
	t.Helper()
	now := time.Now()
	repo := &memRepo{issues: []issue.Issue{
		{ID: "1", Title: "Login Bug", Status: issue.StatusBacklog, Assignee: "Alice", Severity: 3,
			Priority: issue.PriorityHigh, Tags: []string{"auth"}, CreatedAt: now.Add(-96 * time.Hour)},
		{ID: "2", Title: "Slow dashboard", Status: issue.StatusInProgress, Assignee: "Bob", Severity: 2,
			Priority: issue.PriorityMedium, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "3", Title: "Typo in footer", Status: issue.StatusDone, Assignee: "Alice", Severity: 1,
			Priority: issue.PriorityLow, CreatedAt: now.Add(-24 * time.Hour)},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := state.New(repo, state.Options{Logger: logger})
	if err := store.FetchNow(context.Background()); err != nil {
		t.Fatalf("FetchNow: %v", err)
	}

	h := harness{
		repo:      repo,
		store:     store,
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		notices:   make(chan string, 4),
	}
	m := New(Options{
		Store:     store,
		Prefs:     prefs.Prefs{Theme: prefs.ThemeLight},
		PrefsPath: h.prefsPath,
		Role:      role,
		Notices:   h.notices,
		Logger:    logger,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h, next.(Model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends keys one at a time and returns the model with the last
// command, unexecuted.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

// settle runs an action command and feeds its messages back into the model.
// Commands returned by those updates are not run.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case nil:
		default:
			next, _ := m.Update(msg)
			m = next.(Model)
		}
	}
	return m
}

func TestBoard_RendersColumns(t *testing.T) {
	_, m := newHarness(t, config.RoleAdmin)

	out := m.View()
	for _, want := range []string{"Backlog 1", "In Progress 1", "Done 1", "#1 Login Bug", "Alice · sev 3 · High", "No filters"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View missing %q:\n%s", want, out)
		}
	}
}

func TestBoard_MoveNextMutatesSelectedCard(t *testing.T) {
	h, m := newHarness(t, config.RoleAdmin)

	m, cmd := press(t, m, "]")
	m = settle(t, m, cmd)

	if got := h.repo.status("1"); got != issue.StatusInProgress {
		t.Fatalf("backend status = %q, want In Progress", got)
	}
	if !strings.Contains(m.flash, `Moved "Login Bug" to In Progress`) {
		t.Fatalf("flash = %q", m.flash)
	}
	if !strings.Contains(m.View(), "u: undo (") {
		t.Fatalf("undo countdown missing:\n%s", m.View())
	}
}

func TestBoard_MovePrevAtFirstColumnIsNoop(t *testing.T) {
	_, m := newHarness(t, config.RoleAdmin)

	_, cmd := press(t, m, "[")
	if cmd != nil {
		t.Fatal("moving a Backlog card left should not issue a mutation")
	}
}

func TestBoard_ContributorCannotChangeIssues(t *testing.T) {
	h, m := newHarness(t, config.RoleContributor)

	for _, k := range []string{"]", "[", "r", "u"} {
		var cmd tea.Cmd
		m, cmd = press(t, m, k)
		if cmd != nil {
			t.Fatalf("key %q returned a command for a contributor", k)
		}
		if !strings.Contains(m.flash, "Admin role required") {
			t.Fatalf("key %q flash = %q", k, m.flash)
		}
	}
	if got := h.repo.status("1"); got != issue.StatusBacklog {
		t.Fatalf("backend status = %q, want Backlog", got)
	}

	m, _ = press(t, m, "o")
	if m.role != config.RoleAdmin {
		t.Fatalf("role = %q after toggle", m.role)
	}
}

func TestBoard_ResolveThenUndo(t *testing.T) {
	h, m := newHarness(t, config.RoleAdmin)

	m, cmd := press(t, m, "r")
	m = settle(t, m, cmd)
	if got := h.repo.status("1"); got != issue.StatusDone {
		t.Fatalf("after resolve backend status = %q", got)
	}

	m, cmd = press(t, m, "u")
	m = settle(t, m, cmd)
	if got := h.repo.status("1"); got != issue.StatusBacklog {
		t.Fatalf("after undo backend status = %q", got)
	}
	if m.flash != "Undo applied" {
		t.Fatalf("flash = %q", m.flash)
	}

	m, cmd = press(t, m, "u")
	if cmd != nil || m.flash != "Nothing to undo" {
		t.Fatalf("second undo: cmd=%v flash=%q", cmd != nil, m.flash)
	}
}

func TestBoard_ResolveSkipsDoneIssues(t *testing.T) {
	_, m := newHarness(t, config.RoleAdmin)

	m, cmd := press(t, m, "l", "l", "r")
	if cmd != nil {
		t.Fatal("resolving a Done issue should not issue a mutation")
	}
	if m.flash != "Already resolved" {
		t.Fatalf("flash = %q", m.flash)
	}
}

func TestBoard_FailedMoveShowsDismissableError(t *testing.T) {
	h, m := newHarness(t, config.RoleAdmin)
	h.repo.mu.Lock()
	h.repo.fail = true
	h.repo.mu.Unlock()

	m, cmd := press(t, m, "]")
	m = settle(t, m, cmd)

	if !strings.Contains(m.View(), "Failed to update issue") {
		t.Fatalf("error banner missing:\n%s", m.View())
	}
	if it, _ := h.store.Issue("1"); it.Status != issue.StatusBacklog {
		t.Fatalf("local status = %q, want rollback to Backlog", it.Status)
	}

	m, _ = press(t, m, "x")
	if strings.Contains(m.View(), "Failed to update issue") {
		t.Fatal("error banner still shown after dismiss")
	}
}

func TestBoard_SearchFiltersAsYouType(t *testing.T) {
	_, m := newHarness(t, config.RoleAdmin)

	m, _ = press(t, m, "/", "l", "o", "g")
	if !m.searching {
		t.Fatal("search input not active")
	}
	if len(m.snapshot.Visible) != 1 || m.snapshot.Visible[0].ID != "1" {
		t.Fatalf("visible = %v, want only #1", m.snapshot.Visible)
	}

	// Keys typed into the search box are not commands.
	m, _ = press(t, m, "q")
	if m.snapshot.Criteria.Search != "logq" {
		t.Fatalf("search = %q", m.snapshot.Criteria.Search)
	}

	m, _ = press(t, m, "esc")
	if m.searching || m.snapshot.Criteria.Search != "" || len(m.snapshot.Visible) != 3 {
		t.Fatalf("esc should clear search: searching=%v criteria=%+v", m.searching, m.snapshot.Criteria)
	}
}

func TestBoard_CycleFilters(t *testing.T) {
	_, m := newHarness(t, config.RoleAdmin)

	wantAssignees := []string{"Alice", "Bob", ""}
	for _, want := range wantAssignees {
		m, _ = press(t, m, "a")
		if got := m.snapshot.Criteria.Assignee; got != want {
			t.Fatalf("assignee filter = %q, want %q", got, want)
		}
	}

	m, _ = press(t, m, "s")
	if m.snapshot.Criteria.Severity == nil || *m.snapshot.Criteria.Severity != 1 {
		t.Fatalf("severity filter = %v, want 1", m.snapshot.Criteria.Severity)
	}
	if len(m.snapshot.Visible) != 1 {
		t.Fatalf("visible = %d, want 1", len(m.snapshot.Visible))
	}
	if out := m.View(); !strings.Contains(out, "Filters: severity 1") {
		t.Fatalf("filter line missing active severity:\n%s", out)
	}

	m, _ = press(t, m, "c")
	if !m.snapshot.Criteria.IsZero() {
		t.Fatalf("criteria after clear = %+v", m.snapshot.Criteria)
	}
	if out := m.View(); !strings.Contains(out, "No filters") {
		t.Fatalf("filter line after clear:\n%s", out)
	}
}

func TestBoard_OpenRecordsRecentlyViewed(t *testing.T) {
	h, m := newHarness(t, config.RoleAdmin)

	m, _ = press(t, m, "l", "enter")
	if m.detailID != "2" {
		t.Fatalf("detailID = %q, want 2", m.detailID)
	}
	if out := m.View(); !strings.Contains(out, "Created") || !strings.Contains(out, "2 days ago") {
		t.Fatalf("detail panel missing:\n%s", out)
	}

	saved, err := prefs.Load(h.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if len(saved.RecentlyAccessed) != 1 || saved.RecentlyAccessed[0] != "2" {
		t.Fatalf("recent = %v, want [2]", saved.RecentlyAccessed)
	}

	m, _ = press(t, m, "v")
	if !strings.Contains(m.View(), "Recently viewed") {
		t.Fatal("recent list not shown")
	}
	m, _ = press(t, m, "esc")
	if m.detailID != "" || m.showRecent {
		t.Fatal("esc should close panels")
	}
}

func TestBoard_ToggleThemePersists(t *testing.T) {
	h, m := newHarness(t, config.RoleAdmin)

	m, _ = press(t, m, "T")
	if m.theme.Name != prefs.ThemeDark {
		t.Fatalf("theme = %q", m.theme.Name)
	}
	saved, _ := prefs.Load(h.prefsPath)
	if saved.Theme != prefs.ThemeDark {
		t.Fatalf("saved theme = %q", saved.Theme)
	}
}

func TestBoard_TickShowsAndExpiresNotices(t *testing.T) {
	h, m := newHarness(t, config.RoleAdmin)
	now := time.Now()

	h.notices <- "Live update: \"Login Bug\" moved to Done"
	next, cmd := m.Update(tickMsg(now))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if !strings.Contains(m.View(), "Live update") {
		t.Fatalf("notice missing:\n%s", m.View())
	}

	next, _ = m.Update(tickMsg(now.Add(noticeTTL + time.Second)))
	m = next.(Model)
	if m.notice != "" {
		t.Fatalf("notice = %q, want expired", m.notice)
	}
}

func TestBoard_HelpOverlay(t *testing.T) {
	_, m := newHarness(t, config.RoleAdmin)

	m, _ = press(t, m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not shown")
	}
	m, _ = press(t, m, "j")
	if m.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestBoard_QuitKeys(t *testing.T) {
	_, m := newHarness(t, config.RoleAdmin)
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := press(t, m, k)
		if cmd == nil {
			t.Fatalf("%s returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s did not quit", k)
		}
	}
}

func TestNextOption(t *testing.T) {
	options := []int{1, 3, 5}
	three, five, missing := 3, 5, 9

	tests := []struct {
		name    string
		current *int
		want    *int
	}{
		{"unset picks first", nil, &options[0]},
		{"advances", &three, &five},
		{"last wraps to unset", &five, nil},
		{"unknown resets", &missing, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextOption(options, tt.current)
			switch {
			case tt.want == nil && got != nil:
				t.Fatalf("nextOption = %d, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Fatalf("nextOption = %v, want %d", got, *tt.want)
			}
		})
	}
	if nextOption[int](nil, nil) != nil {
		t.Fatal("no options should stay unset")
	}
}
