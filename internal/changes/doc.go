// Package changes detects what differs between two issue snapshots so
// edits made elsewhere can be surfaced to the user.
//
// Diff keys both snapshots by issue ID. For issues present in both it checks
// status, priority, assignee and severity independently, so one issue can
// contribute several changes in a single pass. Issues only in the newer
// snapshot are reported as created, issues only in the older one as removed.
//
// Output order is fixed (field changes, then creations, then removals) so
// tests can compare whole slices. Presentation is left to the caller; String
// and Summary produce the short human-readable lines the board shows.
package changes
