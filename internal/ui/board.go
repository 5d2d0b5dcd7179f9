package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/issueboard/internal/config"
	"github.com/five82/issueboard/internal/issue"
	"github.com/five82/issueboard/internal/view"
)

const (
	minColumnWidth = 18
	cardLines      = 4 // three text lines plus a spacer
)

// renderMain renders the full board.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n")

	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	b.WriteString(m.renderColumns())

	if m.detailID != "" {
		b.WriteString("\n")
		b.WriteString(m.renderDetail())
	}
	if m.showRecent {
		b.WriteString("\n")
		b.WriteString(m.renderRecent())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{
		styles.AccentText.Bold(true).Render("Issue Board"),
		styles.MutedText.Render(m.syncLabel()),
		styles.FaintText.Render("role: " + m.role),
	}
	if label := m.undoLabel(); label != "" {
		parts = append(parts, styles.WarningText.Render(label))
	}
	return styles.Header.Width(max(m.width, 1)).Render(strings.Join(parts, "  │  "))
}

// syncLabel is the sync indicator text.
func (m Model) syncLabel() string {
	switch {
	case m.snapshot.Loading:
		return "Syncing…"
	case m.snapshot.LastSync.IsZero():
		return "Not synced yet"
	default:
		return "Last synced " + m.snapshot.LastSync.Format("15:04:05")
	}
}

// undoLabel shows the countdown for the newest undoable change.
func (m Model) undoLabel() string {
	if m.snapshot.Undo == nil || m.role != config.RoleAdmin {
		return ""
	}
	return fmt.Sprintf("u: undo (%ds)", ceilSeconds(m.snapshot.UndoRemaining()))
}

func (m Model) renderFilters() string {
	styles := m.theme.Styles()
	if m.searching {
		return " " + m.search.View()
	}

	label := "No filters"
	if c := m.snapshot.Criteria; !c.IsZero() {
		var parts []string
		if c.Search != "" {
			parts = append(parts, fmt.Sprintf("search %q", c.Search))
		}
		if c.Assignee != "" {
			parts = append(parts, "assignee "+c.Assignee)
		}
		if c.Severity != nil {
			parts = append(parts, fmt.Sprintf("severity %d", *c.Severity))
		}
		label = "Filters: " + strings.Join(parts, ", ")
	}
	count := fmt.Sprintf("  (%d of %d issues)", len(m.snapshot.Visible), len(m.snapshot.Issues))
	return " " + styles.MutedText.Render(label) + styles.FaintText.Render(count)
}

// renderBanner shows, in order of importance, the store error, a live-update
// notice or the last action's feedback.
func (m Model) renderBanner() string {
	styles := m.theme.Styles()
	switch {
	case m.snapshot.Err != "":
		return " " + styles.DangerText.Render("⚠ "+m.snapshot.Err) + styles.FaintText.Render("  (x to dismiss)")
	case m.notice != "":
		return " " + styles.InfoText.Render(m.notice)
	case m.flash != "":
		return " " + styles.AccentText.Render(m.flash)
	default:
		return ""
	}
}

func (m Model) renderColumns() string {
	statuses := issue.Statuses()
	columns := m.columns()

	// Borders and padding take four cells per column; Width covers the padding.
	inner := max(m.width/len(statuses)-4, minColumnWidth)
	maxCards := max((m.height-12)/cardLines, 1)

	rendered := make([]string, 0, len(statuses))
	for i, status := range statuses {
		rendered = append(rendered, m.renderColumn(i, status, columns[status], inner, maxCards))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderColumn(idx int, status issue.Status, cards []issue.Issue, width, maxCards int) string {
	styles := m.theme.Styles()
	focused := idx == m.column

	var b strings.Builder
	b.WriteString(styles.StatusStyle(status).Render(fmt.Sprintf("%s %d", status, len(cards))))
	b.WriteString("\n\n")

	if len(cards) == 0 {
		b.WriteString(styles.FaintText.Render("No issues"))
	}

	// Scroll so the selected card stays in view.
	selected := clampRow(m.rows[idx], len(cards))
	start := max(0, selected-maxCards+1)
	end := min(len(cards), start+maxCards)
	for i := start; i < end; i++ {
		b.WriteString(m.renderCard(cards[i], width-2, focused && i == selected))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	if end < len(cards) {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("… %d more", len(cards)-end)))
	}

	frame := styles.Column
	if focused {
		frame = styles.Focused
	}
	return frame.Width(width).Render(b.String())
}

func (m Model) renderCard(it issue.Issue, width int, selected bool) string {
	styles := m.theme.Styles()

	title := truncate(fmt.Sprintf("#%s %s", it.ID, it.Title), width)
	meta := truncate(fmt.Sprintf("%s · sev %d · %s", assigneeLabel(it.Assignee), it.Severity, it.Priority), width)
	tags := truncate(tagLabel(it.Tags), width)

	if selected {
		sel := styles.Selected.Width(width)
		return strings.Join([]string{
			sel.Bold(true).Render(title),
			sel.Render(meta),
			sel.Render(tags),
		}, "\n")
	}
	return strings.Join([]string{
		styles.Text.Bold(true).Render(title),
		styles.MutedText.Render(meta),
		styles.FaintText.Render(tags),
	}, "\n")
}

func (m Model) renderDetail() string {
	styles := m.theme.Styles()

	idx := issue.Index(m.snapshot.Issues, m.detailID)
	if idx < 0 {
		return styles.Panel.Render(styles.MutedText.Render(fmt.Sprintf("Issue #%s no longer exists", m.detailID)))
	}
	it := m.snapshot.Issues[idx]
	now := m.snapshot.Now

	label := func(s string) string { return styles.FaintText.Render(padRight(s, 10)) }
	lines := []string{
		styles.Text.Bold(true).Render(fmt.Sprintf("#%s %s", it.ID, it.Title)),
		label("Status") + styles.StatusStyle(it.Status).Render(string(it.Status)),
		label("Priority") + styles.PriorityStyle(it.Priority).Render(string(it.Priority)),
		label("Severity") + styles.Text.Render(fmt.Sprintf("%d", it.Severity)),
		label("Assignee") + styles.Text.Render(assigneeLabel(it.Assignee)),
		label("Tags") + styles.Text.Render(tagLabel(it.Tags)),
		label("Created") + styles.Text.Render(fmt.Sprintf("%s (%s)",
			it.CreatedAt.Format("2006-01-02"), daysAgo(view.DaysSince(it.CreatedAt, now)))),
		label("Score") + styles.Text.Render(fmt.Sprintf("%d", view.PriorityScore(it, now))),
	}
	if it.UserDefinedRank != 0 {
		lines = append(lines, label("Rank")+styles.Text.Render(fmt.Sprintf("%+d", it.UserDefinedRank)))
	}
	if m.role == config.RoleAdmin && it.Status != issue.StatusDone {
		lines = append(lines, "", styles.FaintText.Render("r resolve · [ ] move · esc close"))
	} else {
		lines = append(lines, "", styles.FaintText.Render("esc close"))
	}
	return styles.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderRecent() string {
	styles := m.theme.Styles()

	lines := []string{styles.AccentText.Bold(true).Render("Recently viewed")}
	if len(m.prefs.RecentlyAccessed) == 0 {
		lines = append(lines, styles.FaintText.Render("Nothing viewed yet"))
	}
	for _, id := range m.prefs.RecentlyAccessed {
		idx := issue.Index(m.snapshot.Issues, id)
		if idx < 0 {
			lines = append(lines, styles.FaintText.Render(fmt.Sprintf("#%s (removed)", id)))
			continue
		}
		it := m.snapshot.Issues[idx]
		lines = append(lines, styles.Text.Render(fmt.Sprintf("#%s %s", it.ID, it.Title))+
			"  "+styles.StatusStyle(it.Status).Render(string(it.Status)))
	}
	return styles.Panel.Render(strings.Join(lines, "\n"))
}

func assigneeLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Unassigned"
	}
	return name
}

func tagLabel(tags []string) string {
	if len(tags) == 0 {
		return "no tags"
	}
	return "#" + strings.Join(tags, " #")
}
