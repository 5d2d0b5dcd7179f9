package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the board.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	ToggleTheme key.Binding
	ToggleRole  key.Binding
	Refresh     key.Binding
	Dismiss     key.Binding
	Escape      key.Binding

	// Navigation
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Open  key.Binding

	// Admin actions
	MovePrev key.Binding
	MoveNext key.Binding
	Resolve  key.Binding
	Undo     key.Binding

	// Filters
	Search        key.Binding
	CycleAssignee key.Binding
	CycleSeverity key.Binding
	ClearFilters  key.Binding
	ToggleRecent  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Light/dark theme"),
		),
		ToggleRole: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Switch role"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Refresh now"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss error"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close panel"),
		),

		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "Previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "Next column"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Issue details"),
		),

		MovePrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Move card left"),
		),
		MoveNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Move card right"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Mark as resolved"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Undo last change"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		CycleAssignee: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Cycle assignee filter"),
		),
		CycleSeverity: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle severity filter"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear filters"),
		),
		ToggleRecent: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Recently viewed"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveNext, k.Resolve, k.Undo, k.Search, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one group per column.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Open, k.Escape},
		{k.MovePrev, k.MoveNext, k.Resolve, k.Undo},
		{k.Search, k.CycleAssignee, k.CycleSeverity, k.ClearFilters, k.ToggleRecent},
		{k.Refresh, k.Dismiss, k.ToggleRole, k.ToggleTheme, k.Help, k.Quit},
	}
}
