// Package issue defines the issue record shared by the board, the sync store
// and every repository implementation.
//
// An Issue is identified by its ID, which never changes once created, and
// carries a CreatedAt timestamp that is likewise never mutated. Everything
// else may be changed through a Patch: a partial update in which nil fields
// mean "leave as is".
//
// Two operations make optimistic updates reversible:
//
//	next := current.Apply(patch)    // optimistic value
//	prev := current.Capture(patch)  // just the fields patch overwrites
//	next.Apply(prev)                // restores those fields exactly
//
// Tags behave as a set. NormalizeTags trims labels, drops empty ones and
// collapses duplicates, keeping the first occurrence order so rendering stays
// stable.
//
// The JSON form uses the camelCase keys of the board's wire format
// (createdAt, userDefinedRank) so seed files and the HTTP transport share one
// encoding.
package issue
