// Package app provides the main TUI application that wires all views together.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mohan-con17/ea-review-fe/internal/attach"
	"github.com/mohan-con17/ea-review-fe/internal/config"
	"github.com/mohan-con17/ea-review-fe/internal/history"
	"github.com/mohan-con17/ea-review-fe/internal/report"
	"github.com/mohan-con17/ea-review-fe/internal/review"
	"github.com/mohan-con17/ea-review-fe/internal/tui"
	"github.com/mohan-con17/ea-review-fe/internal/tui/commands"
	"github.com/mohan-con17/ea-review-fe/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model   *tui.Model
	reviews *review.Client
	logs    *history.Client
}

// New creates a new App with the given configuration.
func New(cfg *config.Config) *App {
	timeout := time.Duration(cfg.Server.RequestTimeout) * time.Second

	return &App{
		model:   tui.NewModel(cfg),
		reviews: review.NewClient(cfg.Server.BaseURL),
		logs:    history.NewClient(cfg.Server.BaseURL, timeout),
	}
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		width := msg.Width - 8
		if width > 100 {
			width = 100
		}
		if width > 0 {
			a.model.Textarea.SetWidth(width)
			a.model.PathInput.Width = width
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.model.Spinner, cmd = a.model.Spinner.Update(msg)
		if a.model.Busy {
			return a, cmd
		}
		return a, nil

	case tui.TickMsg:
		if msg.Epoch != a.model.Epoch {
			return a, nil
		}
		a.model.Dots++
		if a.model.Updates != nil {
			return a, commands.ListenStreamCmd(a.model.Updates, a.model.Epoch)
		}
		return a, nil

	case tui.StreamStartedMsg:
		if msg.Epoch != a.model.Epoch {
			return a, nil
		}
		return a, commands.ListenStreamCmd(a.model.Updates, a.model.Epoch)

	case tui.StreamEventMsg:
		return a.handleStreamEvent(msg)

	case tui.StreamClosedMsg:
		if msg.Epoch != a.model.Epoch {
			return a, nil
		}
		a.model.Updates = nil
		a.model.CancelStream = nil
		if a.model.View.Phase() != report.PhaseResolving {
			a.model.Busy = false
		}
		return a, nil

	case tui.SessionResolvedMsg:
		if msg.Epoch != a.model.Epoch {
			return a, nil
		}
		a.model.View.SetSession(msg.Session)
		a.model.Busy = false
		return a, nil

	case tui.SessionLoadFailedMsg:
		if msg.Epoch != a.model.Epoch {
			return a, nil
		}
		a.model.View.ResolveFailed()
		a.model.Busy = false
		a.model.Toast = "Stored session could not be loaded"
		return a, nil

	case tui.SessionsPageMsg:
		a.model.Sessions = msg.Page.Items
		a.model.Page = msg.Page.Page
		a.model.HasMore = msg.Page.HasMore()
		if a.model.SessionCursor >= len(a.model.Sessions) {
			a.model.SessionCursor = 0
		}
		return a, nil

	case tui.SessionsLoadErrorMsg:
		a.model.Toast = fmt.Sprintf("Could not load sessions: %v", msg.Err)
		return a, nil

	case tui.TimelineMsg:
		if msg.Err == nil {
			a.model.Timeline = msg.Timeline
			a.model.MonthOptions = history.MonthLabels(
				msg.Timeline, time.Now(), a.model.Cfg.History.MonthsShown,
			)
		}
		return a, nil

	case tui.ErrorMsg:
		a.model.Err = msg.Err
		return a, nil
	}

	return a, a.updateInputs(msg)
}

// handleStreamEvent routes one update from the stream channel. Stale epochs
// are dropped before they can touch the view.
func (a *App) handleStreamEvent(msg tui.StreamEventMsg) (tea.Model, tea.Cmd) {
	if msg.Epoch != a.model.Epoch {
		return a, nil
	}

	update := msg.Update
	switch {
	case update.Stage != nil:
		a.model.View.AddStage(*update.Stage)
		return a, commands.ListenStreamCmd(a.model.Updates, a.model.Epoch)

	case update.Result != nil:
		a.model.View.SetResult(update.Result)
		cmds := []tea.Cmd{commands.ListenStreamCmd(a.model.Updates, a.model.Epoch)}
		if id := update.Result.ReviewID; id != "" {
			cmds = append(cmds, commands.ResolveSessionCmd(
				a.logs, history.Ref{SessionID: id}, a.model.Epoch,
			))
		} else {
			a.model.Busy = false
		}
		return a, tea.Batch(cmds...)

	case update.Err != nil:
		a.model.View.Fail()
		a.model.Err = update.Err
		a.model.Busy = false
		return a, commands.ListenStreamCmd(a.model.Updates, a.model.Epoch)
	}

	return a, commands.ListenStreamCmd(a.model.Updates, a.model.Epoch)
}

// handleKey routes key presses by tab and focus.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case tui.KeyCtrlC:
		if a.model.CtrlCPending {
			return a, tea.Quit
		}
		a.model.CtrlCPending = true
		return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return tui.CtrlCResetMsg{}
		})

	case tui.KeyTab:
		return a.cycleTab()
	}

	if a.model.ActiveTab == tui.TabHistory {
		return a.handleHistoryKey(msg)
	}
	return a.handleReviewKey(msg)
}

// handleReviewKey handles keys on the review tab.
func (a *App) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.model.Focus == tui.FocusAttachment {
		switch msg.String() {
		case tui.KeyEnter:
			if path := strings.TrimSpace(a.model.PathInput.Value()); path != "" {
				a.model.AttachPaths = append(a.model.AttachPaths, path)
			}
			a.model.PathInput.SetValue("")
			a.model.Focus = tui.FocusMessage
			a.model.PathInput.Blur()
			a.model.Textarea.Focus()
			return a, nil
		case tui.KeyEsc:
			a.model.Focus = tui.FocusMessage
			a.model.PathInput.Blur()
			a.model.Textarea.Focus()
			return a, nil
		}
		var cmd tea.Cmd
		a.model.PathInput, cmd = a.model.PathInput.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "ctrl+a":
		if !a.model.Busy {
			a.model.Focus = tui.FocusAttachment
			a.model.Textarea.Blur()
			a.model.PathInput.Focus()
		}
		return a, nil

	case "ctrl+n":
		if !a.model.Busy {
			a.resetReview()
		}
		return a, nil

	case "ctrl+s":
		if !a.model.Busy {
			return a.submitReview()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.model.Textarea, cmd = a.model.Textarea.Update(msg)
	return a, cmd
}

// handleHistoryKey handles keys on the history tab.
func (a *App) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case tui.KeyUp, "k":
		if a.model.SessionCursor > 0 {
			a.model.SessionCursor--
		}
		return a, nil

	case tui.KeyDown, "j":
		if a.model.SessionCursor < len(a.model.Sessions)-1 {
			a.model.SessionCursor++
		}
		return a, nil

	case "n":
		if a.model.HasMore {
			a.model.Page++
			return a, a.loadSessions()
		}
		return a, nil

	case "m":
		a.cycleMonthFilter()
		a.model.Page = 1
		a.model.SessionCursor = 0
		return a, a.loadSessions()

	case "r":
		return a, tea.Batch(a.loadSessions(), commands.LoadTimelineCmd(a.logs))

	case tui.KeyEnter:
		return a.selectSession()
	}

	return a, nil
}

// cycleTab switches between the review and history tabs, loading the session
// list on entry to history.
func (a *App) cycleTab() (tea.Model, tea.Cmd) {
	if a.model.ActiveTab == tui.TabReview {
		a.model.ActiveTab = tui.TabHistory
		a.model.Textarea.Blur()
		return a, tea.Batch(a.loadSessions(), commands.LoadTimelineCmd(a.logs))
	}

	a.model.ActiveTab = tui.TabReview
	if a.model.Focus == tui.FocusMessage && !a.model.Busy {
		a.model.Textarea.Focus()
	}
	return a, nil
}

// cycleMonthFilter advances the month filter: all months, then each timeline
// month in turn.
func (a *App) cycleMonthFilter() {
	options := append([]string{""}, a.model.MonthOptions...)
	for i, opt := range options {
		if opt == a.model.MonthFilter {
			a.model.MonthFilter = options[(i+1)%len(options)]
			return
		}
	}
	a.model.MonthFilter = ""
}

// loadSessions fetches the current page with the current month filter.
func (a *App) loadSessions() tea.Cmd {
	if a.model.Page < 1 {
		a.model.Page = 1
	}
	return commands.LoadSessionsCmd(
		a.logs, a.model.MonthFilter, a.model.Page, a.model.Cfg.History.PageSize,
	)
}

// abandonStream cancels and drains the in-flight stream, if any. The drain
// goroutine keeps consuming until the stream goroutine closes the channel, so
// the abandoned sender never blocks.
func (a *App) abandonStream() {
	if a.model.CancelStream != nil {
		a.model.CancelStream()
		a.model.CancelStream = nil
	}
	if a.model.Updates != nil {
		stale := a.model.Updates
		go func() {
			for range stale {
			}
		}()
		a.model.Updates = nil
	}
}

// selectSession resolves the session under the cursor on the review tab.
func (a *App) selectSession() (tea.Model, tea.Cmd) {
	if len(a.model.Sessions) == 0 {
		return a, nil
	}
	item := a.model.Sessions[a.model.SessionCursor]

	a.model.Epoch++
	a.abandonStream()
	a.model.View.BeginResolve()
	a.model.Busy = true
	a.model.Err = nil
	a.model.Toast = ""
	a.model.ActiveTab = tui.TabReview

	return a, tea.Batch(
		a.model.Spinner.Tick,
		commands.ResolveSessionCmd(a.logs, item.Ref(), a.model.Epoch),
	)
}

// resetReview clears the view for a fresh run.
func (a *App) resetReview() {
	a.model.Epoch++
	a.abandonStream()
	a.model.View.Reset()
	a.model.Busy = false
	a.model.Err = nil
	a.model.Toast = ""
	a.model.AttachPaths = nil
	a.model.Textarea.SetValue("")
	a.model.Textarea.Focus()
}

// submitReview builds the payload from the compose state and opens the stream.
func (a *App) submitReview() (tea.Model, tea.Cmd) {
	records, readErrs := attach.ReadAll(a.model.AttachPaths)
	if len(readErrs) > 0 {
		a.model.Toast = fmt.Sprintf("%d attachment(s) could not be read and were skipped", len(readErrs))
	} else {
		a.model.Toast = ""
	}

	payload, err := review.BuildPayload(a.model.Textarea.Value(), records)
	if err != nil {
		a.model.Toast = "Nothing to review: add a message or an attachment"
		return a, nil
	}

	a.model.Epoch++
	a.abandonStream()
	a.model.View.StartStream()
	a.model.Busy = true
	a.model.Err = nil
	a.model.Updates = make(chan tui.StreamUpdate, 100)

	ctx, cancel := context.WithCancel(context.Background())
	a.model.CancelStream = cancel

	return a, tea.Batch(
		a.model.Spinner.Tick,
		commands.StartReviewCmd(ctx, a.reviews, payload, a.model.Epoch, a.model.Updates),
	)
}

// updateInputs forwards unrouted messages to the focused input component.
func (a *App) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.model.Textarea, cmd = a.model.Textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.model.PathInput, cmd = a.model.PathInput.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

// View renders the current application state.
func (a *App) View() string {
	var content string
	switch a.model.ActiveTab {
	case tui.TabHistory:
		content = views.RenderHistory(a.model)
	default:
		content = views.RenderReview(a.model)
	}

	sections := []string{a.renderTabBar(), content}
	if footer := a.renderFooter(); footer != "" {
		sections = append(sections, footer)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTabBar renders the tab bar with the active tab highlighted.
func (a *App) renderTabBar() string {
	tabs := []struct {
		name string
		tab  tui.Tab
	}{
		{"Review", tui.TabReview},
		{"History", tui.TabHistory},
	}

	var rendered []string
	for _, t := range tabs {
		if t.tab == a.model.ActiveTab {
			rendered = append(rendered, tui.ActiveTabStyle.Render(t.name))
		} else {
			rendered = append(rendered, tui.InactiveTabStyle.Render(t.name))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderFooter renders the toast/error line and quit hint.
func (a *App) renderFooter() string {
	var parts []string

	if a.model.Err != nil {
		parts = append(parts, tui.ErrorStyle.Render(a.model.Err.Error()))
	}
	if a.model.Toast != "" {
		parts = append(parts, tui.WarningStyle.Render(a.model.Toast))
	}
	if a.model.CtrlCPending {
		parts = append(parts, tui.DimStyle.Render("Press ctrl+c again to quit"))
	}

	return strings.Join(parts, "\n")
}
