package state

import "errors"

var (
	// ErrFetchFailed wraps every failed poll or manual refresh.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrUpdateFailed wraps a rejected mutation after it has been rolled back.
	ErrUpdateFailed = errors.New("update failed")
	// ErrClosed is returned by operations started after Close.
	ErrClosed = errors.New("store closed")
)

// Messages shown to the user through Snapshot.Err.
const (
	msgFetchFailed  = "Failed to fetch issues"
	msgUpdateFailed = "Failed to update issue"
)
