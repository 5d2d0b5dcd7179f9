package ui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/issueboard/internal/config"
	"github.com/five82/issueboard/internal/issue"
	"github.com/five82/issueboard/internal/view"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Escape):
		m.detailID = ""
		m.showRecent = false

	case key.Matches(msg, m.keys.ToggleTheme):
		m.theme = GetTheme(m.prefs.ToggleTheme())
		m.savePrefs()

	case key.Matches(msg, m.keys.ToggleRole):
		if m.role == config.RoleAdmin {
			m.role = config.RoleContributor
		} else {
			m.role = config.RoleAdmin
		}
		m.flash = "Role: " + m.role

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchCmd()

	case key.Matches(msg, m.keys.Dismiss):
		m.store.ClearError()
		m.flash = ""
		m.refresh()

	case key.Matches(msg, m.keys.Left):
		if m.column > 0 {
			m.column--
		}

	case key.Matches(msg, m.keys.Right):
		if m.column < len(issue.Statuses())-1 {
			m.column++
		}

	case key.Matches(msg, m.keys.Up):
		m.rows[m.column] = clampRow(m.rows[m.column]-1, m.columnLen())

	case key.Matches(msg, m.keys.Down):
		m.rows[m.column] = clampRow(m.rows[m.column]+1, m.columnLen())

	case key.Matches(msg, m.keys.Open):
		if it, ok := m.selected(); ok {
			m.detailID = it.ID
			m.prefs.Touch(it.ID)
			m.savePrefs()
		}

	case key.Matches(msg, m.keys.MovePrev):
		return m.move(-1)

	case key.Matches(msg, m.keys.MoveNext):
		return m.move(+1)

	case key.Matches(msg, m.keys.Resolve):
		return m.resolve()

	case key.Matches(msg, m.keys.Undo):
		return m.undo()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.CycleAssignee):
		var current *string
		if name := m.snapshot.Criteria.Assignee; name != "" {
			current = &name
		}
		next := nextOption(view.Assignees(m.snapshot.Issues), current)
		if next == nil {
			m.store.SetAssignee("")
		} else {
			m.store.SetAssignee(*next)
		}
		m.refresh()

	case key.Matches(msg, m.keys.CycleSeverity):
		m.store.SetSeverity(nextOption(view.Severities(m.snapshot.Issues), m.snapshot.Criteria.Severity))
		m.refresh()

	case key.Matches(msg, m.keys.ClearFilters):
		m.store.ClearFilters()
		m.search.SetValue("")
		m.refresh()

	case key.Matches(msg, m.keys.ToggleRecent):
		m.showRecent = !m.showRecent
	}

	return m, nil
}

// handleSearchKey edits the search term; the board filters as you type.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.store.SetSearch("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.store.SetSearch(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m Model) move(delta int) (tea.Model, tea.Cmd) {
	if !m.requireAdmin() {
		return m, nil
	}
	it, ok := m.selected()
	if !ok {
		return m, nil
	}

	target := it.Status.Next()
	if delta < 0 {
		target = it.Status.Prev()
	}
	if target == it.Status {
		return m, nil
	}
	m.flash = ""
	patch := issue.Patch{Status: issue.Set(target)}
	return m, m.mutateCmd(it.ID, patch, fmt.Sprintf("Moved %q to %s", it.Title, target))
}

func (m Model) resolve() (tea.Model, tea.Cmd) {
	if !m.requireAdmin() {
		return m, nil
	}
	it, ok := m.selected()
	if !ok {
		return m, nil
	}
	if it.Status == issue.StatusDone {
		m.flash = "Already resolved"
		return m, nil
	}
	m.flash = ""
	patch := issue.Patch{Status: issue.Set(issue.StatusDone)}
	return m, m.mutateCmd(it.ID, patch, fmt.Sprintf("Resolved %q", it.Title))
}

func (m Model) undo() (tea.Model, tea.Cmd) {
	if !m.requireAdmin() {
		return m, nil
	}
	if m.snapshot.Undo == nil {
		m.flash = "Nothing to undo"
		return m, nil
	}
	m.flash = ""
	return m, m.undoCmd()
}

// requireAdmin reports whether the current role may change issues and tells
// the user when it may not.
func (m *Model) requireAdmin() bool {
	if m.role == config.RoleAdmin {
		return true
	}
	m.flash = "Admin role required (press o to switch)"
	return false
}

func (m Model) mutateCmd(id string, patch issue.Patch, done string) tea.Cmd {
	ctx, store := m.ctx, m.store
	return tea.Batch(func() tea.Msg {
		return actionMsg{done: done, err: store.Mutate(ctx, id, patch)}
	}, refreshSoon())
}

func (m Model) undoCmd() tea.Cmd {
	ctx, store := m.ctx, m.store
	return tea.Batch(func() tea.Msg {
		undone, err := store.UndoLast(ctx)
		if err == nil && !undone {
			return actionMsg{done: "Nothing to undo"}
		}
		return actionMsg{done: "Undo applied", err: err}
	}, refreshSoon())
}

func (m Model) fetchCmd() tea.Cmd {
	ctx, store := m.ctx, m.store
	return tea.Batch(func() tea.Msg {
		return actionMsg{done: "Refreshed", err: store.FetchNow(ctx)}
	}, refreshSoon())
}

// columns groups the visible issues by board column.
func (m Model) columns() map[issue.Status][]issue.Issue {
	return view.GroupByStatus(m.snapshot.Visible)
}

func (m Model) columnLen() int {
	return len(m.columns()[issue.Statuses()[m.column]])
}

// selected returns the highlighted card in the focused column.
func (m Model) selected() (issue.Issue, bool) {
	cards := m.columns()[issue.Statuses()[m.column]]
	if len(cards) == 0 {
		return issue.Issue{}, false
	}
	return cards[clampRow(m.rows[m.column], len(cards))], true
}

func clampRow(row, n int) int {
	if n <= 0 || row < 0 {
		return 0
	}
	return min(row, n-1)
}

// nextOption steps a filter through options and then back to unset (nil).
func nextOption[T comparable](options []T, current *T) *T {
	if len(options) == 0 {
		return nil
	}
	if current == nil {
		v := options[0]
		return &v
	}
	i := slices.Index(options, *current)
	if i < 0 || i == len(options)-1 {
		return nil
	}
	v := options[i+1]
	return &v
}
