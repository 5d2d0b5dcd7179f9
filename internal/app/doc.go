// Package app is the composition root for the board.
//
// # Overview
//
// Run wires configuration, preferences, the issue repository, the sync
// store, the background poller and the Bubble Tea UI:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()      TOML + ISSUEBOARD_* env
//	       ├─────> NewLogger()        log_file or discard
//	       ├─────> prefs.Load()       theme, recently viewed
//	       ├─────> NewRepository()    tracker.Client or backend.Simulated
//	       ├─────> state.New()        OnChanges feeds UI notices
//	       ├─────> StartPoller()      fetch now, then every poll_seconds
//	       └─────> ui.Run()           blocks until quit
//
// NewSimulated is shared with cmd/boardd so the in-process backend and the
// daemon behave identically for the same config.
//
// # Polling Behavior
//
// The poller fetches once at start and then on every tick of the injected
// clock. A failed poll is logged and retried on the next tick; the store
// keeps showing the last good data and its error message. The loop exits on
// Stop, on context cancellation, or once the store reports it is closed.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file unreadable or invalid
//   - Log file cannot be opened
//   - Repository construction fails (bad backend address, bad seed file)
//
// Everything after startup is recoverable and surfaces in the UI.
package app
