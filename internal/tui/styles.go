package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mohan-con17/ea-review-fe/internal/report"
)

// Color constants.
const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// ActiveTabStyle renders the active tab.
	ActiveTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(primaryColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2)

	// InactiveTabStyle renders inactive tabs.
	InactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#374151")).
				Foreground(lipgloss.Color("#9CA3AF")).
				Padding(0, 2)

	// ProgressFullStyle renders filled progress indicators.
	ProgressFullStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(secondaryColor))

	// ProgressEmptyStyle renders empty progress indicators.
	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(dimColor))

	// BoldStyle and ItalicStyle render inline emphasis inside report text.
	BoldStyle   = lipgloss.NewStyle().Bold(true)
	ItalicStyle = lipgloss.NewStyle().Italic(true)
)

// Stage status icon variables (pre-rendered strings).
var (
	// StageDone indicates a completed stage.
	StageDone = SuccessStyle.Render("✓")

	// StageRunning indicates a currently running stage.
	StageRunning = WarningStyle.Render("▸")

	// StagePending indicates a stage waiting to run.
	StagePending = DimStyle.Render("○")

	// StageFailed indicates a failed stage.
	StageFailed = ErrorStyle.Render("✗")
)

// ToneStyle maps a status tone to its render style.
func ToneStyle(tone report.StatusTone) lipgloss.Style {
	switch tone {
	case report.ToneOK:
		return SuccessStyle
	case report.ToneInfo:
		return WarningStyle
	case report.ToneAlert:
		return ErrorStyle
	default:
		return DimStyle
	}
}

// BandStyle maps a similarity band to its render style.
func BandStyle(band report.Band) lipgloss.Style {
	switch band {
	case report.BandAcceptable:
		return SuccessStyle
	case report.BandWarning:
		return WarningStyle
	default:
		return ErrorStyle
	}
}
