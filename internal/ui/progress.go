// Package ui provides terminal output components for eareview.
// This file implements the progress display shown during a streaming review.
package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/mohan-con17/ea-review-fe/internal/report"
)

// stageState holds the display state of a single pipeline stage.
type stageState struct {
	Tag     string
	Status  string
	Elapsed time.Duration
}

// StageProgress manages a live-updating terminal view of pipeline stages.
// Stages are registered on first sight, in wire order.
type StageProgress struct {
	mu          sync.Mutex
	title       string
	stages      []*stageState
	stageIndex  map[string]int // tag -> index in stages slice
	started     bool
	isTTY       bool
	linesDrawn  int
	startTimes  map[string]time.Time
	lastPrinted map[string]string // tracks last printed status per stage (non-TTY)
}

// NewStageProgress creates a StageProgress for the given review title.
func NewStageProgress(title string) *StageProgress {
	return &StageProgress{
		title:       title,
		stageIndex:  make(map[string]int),
		startTimes:  make(map[string]time.Time),
		lastPrinted: make(map[string]string),
		isTTY:       term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Start draws the initial progress display.
func (p *StageProgress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = true
	p.render()
}

// Observe records a stage event and re-renders the display. Unknown stages
// are registered in arrival order.
func (p *StageProgress) Observe(tag, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx, ok := p.stageIndex[tag]
	if !ok {
		idx = len(p.stages)
		p.stageIndex[tag] = idx
		p.stages = append(p.stages, &stageState{Tag: tag})
		p.startTimes[tag] = time.Now()
	}

	stage := p.stages[idx]
	stage.Status = status

	if report.ToneOf(status) == report.ToneOK || report.ToneOf(status) == report.ToneAlert {
		if start, ok := p.startTimes[tag]; ok {
			stage.Elapsed = time.Since(start)
		}
	}

	if p.started {
		p.render()
	}
}

// Finish finalizes the display by moving the cursor below all output
// and printing a summary line.
func (p *StageProgress) Finish(ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isTTY && p.linesDrawn > 0 {
		fmt.Print("\n")
	}

	if ok {
		fmt.Printf("\nReview complete: %d stages\n", len(p.stages))
	} else {
		fmt.Printf("\nReview failed after %d stages\n", len(p.stages))
	}
}

// render draws or redraws the progress display.
func (p *StageProgress) render() {
	if !p.isTTY {
		p.renderPlain()
		return
	}
	p.renderTTY()
}

// renderTTY draws the display using ANSI escape codes for in-place updates.
func (p *StageProgress) renderTTY() {
	if p.linesDrawn > 0 {
		fmt.Printf("\033[%dA", p.linesDrawn)
	}

	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("\033[2K\033[1mReviewing %q\033[0m\n", p.title))
	buf.WriteString("\033[2K\n")

	for _, stage := range p.stages {
		buf.WriteString("\033[2K")
		buf.WriteString(formatStageLine(stage, p.startTimes))
		buf.WriteString("\n")
	}

	fmt.Print(buf.String())
	p.linesDrawn = len(p.stages) + 2 // header + blank + stages
}

// renderPlain writes non-TTY output (for CI/piping).
// Only prints on status transitions to avoid duplicate lines.
func (p *StageProgress) renderPlain() {
	for _, stage := range p.stages {
		if prev, seen := p.lastPrinted[stage.Tag]; seen && prev == stage.Status {
			continue
		}
		fmt.Println(formatStageLinePlain(stage))
		p.lastPrinted[stage.Tag] = stage.Status
	}
}

// formatStageLine formats a single stage line with ANSI colors and status icons.
func formatStageLine(stage *stageState, startTimes map[string]time.Time) string {
	icon := statusIcon(stage.Status)
	detail := statusDetail(stage, startTimes)
	return fmt.Sprintf("  %s %s  %s", icon, report.HumanizeTag(stage.Tag), detail)
}

// formatStageLinePlain formats a stage line for non-TTY output.
func formatStageLinePlain(stage *stageState) string {
	label := strings.ToUpper(stage.Status)
	if label == "" {
		label = "PENDING"
	}
	return fmt.Sprintf("[%s] %s", label, report.HumanizeTag(stage.Tag))
}

// statusIcon returns the status icon for a stage.
func statusIcon(status string) string {
	switch report.ToneOf(status) {
	case report.ToneOK:
		return "\033[32m✅\033[0m" // green checkmark
	case report.ToneInfo:
		return "\033[33m⏳\033[0m" // yellow hourglass
	case report.ToneAlert:
		return "\033[31m❌\033[0m" // red X
	default:
		return "\033[90m○\033[0m" // dim circle
	}
}

// statusDetail returns the right-side detail text for a stage.
func statusDetail(stage *stageState, startTimes map[string]time.Time) string {
	switch report.ToneOf(stage.Status) {
	case report.ToneOK:
		return fmt.Sprintf("\033[90m[%s]\033[0m", formatDuration(stage.Elapsed))
	case report.ToneInfo:
		elapsed := time.Since(startTimes[stage.Tag])
		return fmt.Sprintf("\033[33m[%s, %s]\033[0m", stage.Status, formatDuration(elapsed))
	case report.ToneAlert:
		return fmt.Sprintf("\033[31m[%s]\033[0m", stage.Status)
	default:
		return fmt.Sprintf("\033[90m[%s]\033[0m", stage.Status)
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", h, m, s)
}
