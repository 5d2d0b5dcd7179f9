// Package ui renders the issue board as a Bubble Tea program.
//
// # Layout
//
//	Issue Board │ Last synced 14:02:11 │ role: admin │ u: undo (4s)
//	Filters: assignee Alice  (3 of 8 issues)
//	⚠ Failed to update issue  (x to dismiss)
//	╭ Backlog 2 ──╮╭ In Progress 1 ╮╭ Done 0 ─────╮
//	│ #1 Login Bug ││ #2 Dashboard  ││ No issues   │
//	│ Alice · sev 3││ Bob · sev 2   ││             │
//	╰──────────────╯╰───────────────╯╰─────────────╯
//	] Move card right • r Mark as resolved • u Undo last change • ...
//
// Columns come from view.GroupByStatus over Snapshot().Visible, so they are
// already filtered and in priority order. An open detail panel and the
// recently viewed list render below the columns.
//
// # Data Flow
//
// The model never caches issue data beyond the last state.Snapshot. A one
// second tick re-reads the store, which also advances the undo countdown
// and picks up live-update notices from Options.Notices. Mutations, undo and
// manual refresh run as tea.Cmds because the store calls block on the
// repository; a short follow-up refresh makes the optimistic value visible
// before the confirmation arrives.
//
// # Roles
//
// Moving, resolving and undoing are admin actions. The contributor role
// sees the same board but those keys only explain why nothing happened.
// The role switch is a UI affordance, not access control.
//
// # Preferences
//
// Theme toggles (T) and opened issues (enter) are written through to the
// prefs file immediately.
package ui
