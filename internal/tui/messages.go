// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/mohan-con17/ea-review-fe/internal/history"
	"github.com/mohan-con17/ea-review-fe/internal/review"
)

// StreamUpdate is one event from the background stream goroutine. Exactly one
// of the fields is set: a stage event, the terminal result, or the terminal
// error.
type StreamUpdate struct {
	Stage  *review.StageEvent
	Result *review.Result
	Err    error
}

// ============================================================================
// Stream Messages
// ============================================================================

// StreamStartedMsg signals that the review stream has been opened.
type StreamStartedMsg struct {
	Epoch int
}

// StreamEventMsg carries one update from the stream channel.
type StreamEventMsg struct {
	Epoch  int
	Update StreamUpdate
}

// StreamClosedMsg signals that the stream channel has drained and closed.
type StreamClosedMsg struct {
	Epoch int
}

// ============================================================================
// Session Messages
// ============================================================================

// SessionResolvedMsg signals that the persisted session has been fetched.
type SessionResolvedMsg struct {
	Epoch   int
	Session *history.Session
}

// SessionLoadFailedMsg signals a session fetch failure.
type SessionLoadFailedMsg struct {
	Epoch int
	Err   error
}

// SessionsPageMsg provides one page of the session list.
type SessionsPageMsg struct {
	Page history.Page
}

// SessionsLoadErrorMsg signals a session list failure.
type SessionsLoadErrorMsg struct {
	Err error
}

// TimelineMsg provides the month timeline for the history filter.
type TimelineMsg struct {
	Timeline history.Timeline
	Err      error
}

// ============================================================================
// Utility Messages
// ============================================================================

// TickMsg is sent periodically for time-based updates (spinners, dots).
// Carries the epoch of the listener that produced it so a tick from an
// abandoned listener cannot restart polling on the current channel.
type TickMsg struct {
	Epoch int
}

// CtrlCResetMsg clears the Ctrl+C confirmation state after the timeout.
type CtrlCResetMsg struct{}

// ErrorMsg is a generic error message for unrecoverable errors.
type ErrorMsg struct {
	Err error
}
