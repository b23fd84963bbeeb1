// Package store provides SQLite-backed persistence for local run history.
package store

import "time"

// Run represents one review run launched from this machine.
type Run struct {
	ID         string
	ReviewID   string
	Source     string // tui, cli
	Message    string
	Status     string // running, completed, failed
	Score      int
	ScoreKnown bool
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Attachment records a file that was sent with a run.
type Attachment struct {
	ID        int
	RunID     string
	Name      string
	MimeType  string
	SizeBytes int64
	Timestamp time.Time
}
