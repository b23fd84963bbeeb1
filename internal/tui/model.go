// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mohan-con17/ea-review-fe/internal/config"
	"github.com/mohan-con17/ea-review-fe/internal/history"
	"github.com/mohan-con17/ea-review-fe/internal/report"
)

// Tab represents the active tab in the TUI.
type Tab int

const (
	TabReview Tab = iota
	TabHistory
)

// ComposeFocus tracks which input owns the keyboard on the review tab.
type ComposeFocus int

const (
	FocusMessage ComposeFocus = iota
	FocusAttachment
)

// Model is the main TUI model that holds all application state.
type Model struct {
	// State management
	ActiveTab Tab
	Err       error
	Toast     string

	// Configuration
	Cfg *config.Config

	// Review state. Epoch increments on every identity change; stream and
	// resolve messages stamped with an older epoch are dropped.
	View        *report.View
	Epoch       int
	Busy        bool
	AttachPaths []string
	Focus       ComposeFocus

	// Stream channel for the in-flight review, nil when idle. CancelStream
	// aborts the backing request when the run is abandoned.
	Updates      chan StreamUpdate
	CancelStream context.CancelFunc

	// History state
	Sessions      []history.Item
	SessionCursor int
	Page          int
	HasMore       bool
	MonthFilter   string // "" means all months
	MonthOptions  []string
	Timeline      history.Timeline

	// Bubbles components
	Textarea  textarea.Model
	PathInput textinput.Model
	Spinner   spinner.Model

	// Terminal dimensions
	Width  int
	Height int

	// Streaming dots animation counter
	Dots int

	// Ctrl+C confirmation state
	CtrlCPending bool
}

// NewModel creates a new Model with the given configuration.
func NewModel(cfg *config.Config) *Model {
	ta := textarea.New()
	ta.Placeholder = "Describe the architecture to review..."
	ta.CharLimit = 5000
	ta.SetWidth(76)
	ta.SetHeight(5)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "Path to diagram or document..."
	ti.CharLimit = 1024
	ti.Width = 72

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ActiveTab: TabReview,
		Cfg:       cfg,
		View:      report.NewView(),

		Sessions:     make([]history.Item, 0),
		MonthOptions: make([]string, 0),

		Textarea:  ta,
		PathInput: ti,
		Spinner:   sp,

		// Default dimensions (will be updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}
}
