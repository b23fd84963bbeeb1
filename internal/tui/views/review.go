// Package views provides TUI view components for the eareview application.
package views

import (
	"fmt"
	"strings"

	"github.com/mohan-con17/ea-review-fe/internal/report"
	"github.com/mohan-con17/ea-review-fe/internal/tui"
)

// RenderReview renders the review tab for the current view phase.
func RenderReview(m *tui.Model) string {
	switch m.View.Phase() {
	case report.PhaseStreaming:
		return renderStreaming(m)
	case report.PhaseResolving:
		return renderResolving(m)
	case report.PhaseResolved:
		return renderReport(m)
	case report.PhaseFailed:
		return renderFailed(m)
	default:
		return renderCompose(m)
	}
}

// renderCompose renders the message composer and attachment list.
func renderCompose(m *tui.Model) string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Architecture Review"))
	b.WriteString("\n\n")
	b.WriteString(m.Textarea.View())
	b.WriteString("\n")

	if m.Focus == tui.FocusAttachment {
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("Attach: "))
		b.WriteString(m.PathInput.View())
		b.WriteString("\n")
	}

	if len(m.AttachPaths) > 0 {
		b.WriteString("\n")
		for _, path := range m.AttachPaths {
			b.WriteString(tui.DimStyle.Render("  📎 " + path))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("ctrl+s send · ctrl+a attach · tab history · ctrl+c quit"))

	return boxed(m, b.String())
}

// renderStreaming renders the live stage list.
func renderStreaming(m *tui.Model) string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Review in progress"))
	b.WriteString(" ")
	b.WriteString(m.Spinner.View())
	b.WriteString("\n\n")
	b.WriteString(renderStageList(m))

	return boxed(m, b.String())
}

// renderResolving renders the stage list with the resolve notice.
func renderResolving(m *tui.Model) string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Review complete"))
	b.WriteString("\n\n")
	if stages := renderStageList(m); stages != "" {
		b.WriteString(stages)
		b.WriteString("\n")
	}
	b.WriteString(m.Spinner.View())
	b.WriteString(" Loading stored session")
	b.WriteString(dots(m.Dots))

	return boxed(m, b.String())
}

// renderFailed renders the stream failure notice.
func renderFailed(m *tui.Model) string {
	var b strings.Builder

	b.WriteString(tui.ErrorStyle.Render("Review failed"))
	b.WriteString("\n\n")
	if m.Err != nil {
		b.WriteString(m.Err.Error())
		b.WriteString("\n\n")
	}
	b.WriteString(tui.DimStyle.Render("ctrl+n to start over"))

	return boxed(m, b.String())
}

// renderStageList shows each pipeline stage with its latest status, in
// first-seen order. The newest stage carries the dots animation.
func renderStageList(m *tui.Model) string {
	events := m.View.Stages()
	if len(events) == 0 {
		return tui.DimStyle.Render("Waiting for the pipeline to start" + dots(m.Dots))
	}

	var order []string
	latest := make(map[string]string)
	for _, ev := range events {
		if _, seen := latest[ev.Stage]; !seen {
			order = append(order, ev.Stage)
		}
		latest[ev.Stage] = ev.Status
	}

	var b strings.Builder
	for i, tag := range order {
		status := latest[tag]
		tone := report.ToneOf(status)

		icon := tui.StagePending
		switch tone {
		case report.ToneOK:
			icon = tui.StageDone
		case report.ToneInfo:
			icon = tui.StageRunning
		case report.ToneAlert:
			icon = tui.StageFailed
		}

		line := fmt.Sprintf("  %s %s  %s", icon,
			report.HumanizeTag(tag),
			tui.ToneStyle(tone).Render(report.HumanizeTag(status)))
		if i == len(order)-1 && tone == report.ToneInfo {
			line += dots(m.Dots)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderReport renders the resolved review report.
func renderReport(m *tui.Model) string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Review Report"))
	if id := m.View.ReviewID(); id != "" {
		b.WriteString(tui.DimStyle.Render("  " + id))
	}
	b.WriteString("\n\n")

	if score, ok := m.View.Score(); ok {
		b.WriteString(renderScoreBar(score))
		b.WriteString("\n\n")
	}

	sections, ok := m.View.Report()
	if !ok || sections.Empty() {
		b.WriteString(tui.DimStyle.Render("The review produced no report text."))
		return boxed(m, b.String())
	}

	panels := []struct {
		title string
		lines []string
	}{
		{"Executive Summary", sections.Executive},
		{"Strengths", sections.Strengths},
		{"Best Practice", sections.BestPractice},
		{"Recommendations", sections.Recommendations},
	}
	for _, panel := range panels {
		if len(panel.lines) == 0 {
			continue
		}
		b.WriteString(tui.SelectedStyle.Render(panel.title))
		b.WriteString("\n")
		for _, line := range panel.lines {
			b.WriteString("  • ")
			b.WriteString(renderSpans(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(tui.DimStyle.Render("ctrl+n new review · tab history"))

	return boxed(m, b.String())
}

// renderScoreBar renders the similarity score as a colored bar.
func renderScoreBar(score int) string {
	const width = 30
	filled := score * width / 100
	if filled > width {
		filled = width
	}

	style := tui.BandStyle(report.ScoreBand(score))
	bar := style.Render(strings.Repeat("█", filled)) +
		tui.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))

	return fmt.Sprintf("%s %s", bar, style.Render(fmt.Sprintf("%d%% similarity", score)))
}

// renderSpans renders inline emphasis using terminal styles.
func renderSpans(line string) string {
	var b strings.Builder
	for _, span := range report.Spans(line) {
		switch span.Style {
		case report.SpanBold:
			b.WriteString(tui.BoldStyle.Render(span.Text))
		case report.SpanItalic:
			b.WriteString(tui.ItalicStyle.Render(span.Text))
		case report.SpanBoldItalic:
			b.WriteString(tui.BoldStyle.Italic(true).Render(span.Text))
		default:
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

// dots returns the trailing animation dots for the tick counter.
func dots(n int) string {
	return strings.Repeat(".", n%4)
}

// boxed wraps content in the standard bordered box sized to the terminal.
func boxed(m *tui.Model, content string) string {
	const maxBoxWidth = 100
	boxWidth := maxBoxWidth
	if m.Width-4 < boxWidth {
		boxWidth = m.Width - 4
	}
	if boxWidth < 20 {
		return content
	}
	return tui.BoxStyle.Width(boxWidth).Render(content)
}
