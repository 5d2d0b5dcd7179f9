// Package config loads issueboard settings for both the board and boardd.
//
// # Resolution Order
//
//  1. Built-in defaults (see Default)
//  2. TOML file: the explicit path, else ~/.config/issueboard/config.toml.
//     A missing file is fine; a malformed one is an error.
//  3. ISSUEBOARD_* environment variables, which override single keys
//  4. Normalization (trimming, ~ expansion, zero values back to defaults)
//  5. Validate
//
// # File Format
//
//	backend_addr   = ""                # empty: in-process simulated backend
//	listen         = "127.0.0.1:7490"  # boardd only
//	poll_seconds   = 10
//	undo_window_ms = 5000
//	role           = "admin"           # or "contributor"
//	log_file       = "~/.local/state/issueboard/board.log"
//	seed_file      = ""                # JSONC issue list for the simulated backend
//
//	[simulation]
//	latency_ms                = 500
//	failure_rate              = 0.05
//	live_update_chance        = 0.3
//	live_update_every_seconds = 30
//	seed                      = 0      # 0 seeds from the wall clock
//
// # Environment
//
// ISSUEBOARD_BACKEND_ADDR, ISSUEBOARD_LISTEN, ISSUEBOARD_POLL_SECONDS,
// ISSUEBOARD_UNDO_WINDOW_MS, ISSUEBOARD_ROLE, ISSUEBOARD_LOG_FILE and
// ISSUEBOARD_SEED_FILE map onto the top-level keys of the same name.
package config
