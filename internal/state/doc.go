// Package state holds the board's canonical issue collection and keeps it in
// sync with the issue repository.
//
// # Overview
//
// Store is the only stateful piece of the board. Poll results and mutation
// confirmations flow in; a filtered, priority-sorted Snapshot flows out to
// the UI. The store is constructed with its collaborators (repository,
// clock, logger, merge function) so tests can swap every one of them.
//
//	Poller ──FetchNow──┐                      ┌── Snapshot() ──> UI render
//	                   ▼                      │
//	UI keys ──Mutate──> Store ──Update/Fetch──> Repository
//	        ──UndoLast─┘
//
// # Polling
//
// FetchNow marks the store loading while any fetch is outstanding. A
// successful fetch replaces the collection via the MergeFunc (default
// ReplaceWithFetched), clears the error and stamps LastSync. Differences
// against the previous collection are reported through Options.OnChanges
// for every sync after the first. A failed fetch sets the error message and
// leaves the collection untouched; the next poll tick is the retry.
//
// ReplaceWithFetched means a poll landing while a mutation is unconfirmed
// drops the optimistic value until the confirmation arrives. The merge
// function is the single place to change that.
//
// # Mutation Lifecycle
//
//	Mutate(id, patch)
//	  1. drop expired undo entries
//	  2. unknown id → return nil
//	  3. capture the fields patch will overwrite
//	  4. push UndoEntry (not for undo mutations)
//	  5. apply patch locally            ← visible to Snapshot immediately
//	  6. repo.Update(id, patch)         ← store lock released
//	     ok:   repository record wins, LastSync = now
//	     fail: captured fields re-applied, undo entry removed,
//	           Err set, ErrUpdateFailed returned
//
// Steps 1–5 run in one critical section. Only step 6 waits, so two
// mutations of the same issue may confirm in either order and the last
// confirmation to arrive decides the final value.
//
// # Undo
//
// Undo entries live in a LIFO history that is pruned before every read or
// write. An entry is usable for UndoWindow (default 5s) after capture.
// UndoLast pops the newest usable entry and replays its captured fields as a
// mutation that records no undo entry of its own; if that write fails the
// entry is pushed back. With nothing to undo, UndoLast returns (false, nil).
//
// # Concurrency
//
// All state sits behind one mutex, held only for the synchronous parts
// above and for copying out snapshots, never across repository calls.
// Close detaches the store: calls still in flight finish but no longer
// change its state.
//
// # Usage Example
//
//	store := state.New(repo, state.Options{Logger: logger})
//	poller := app.StartPoller(ctx, store, clock.Real(), 10*time.Second, logger)
//	defer poller.Stop()
//
//	if err := store.Mutate(ctx, "42", issue.Patch{Status: issue.Set(issue.StatusDone)}); err != nil {
//		// already rolled back; tell the user
//	}
//	snap := store.Snapshot()
//	render(snap.Visible, snap.Loading, snap.Err, snap.LastSync)
package state
