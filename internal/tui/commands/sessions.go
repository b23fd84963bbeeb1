package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mohan-con17/ea-review-fe/internal/history"
	"github.com/mohan-con17/ea-review-fe/internal/tui"
)

// LoadSessionsCmd fetches one page of the session list. An empty monthYear
// loads all sessions; a "Mon YYYY" timeline label restricts to that month.
func LoadSessionsCmd(client *history.Client, monthYear string, page, pageSize int) tea.Cmd {
	return func() tea.Msg {
		var (
			result *history.Page
			err    error
		)
		if monthYear == "" {
			result, err = client.AllSessions(context.Background(), page, pageSize)
		} else {
			result, err = client.MonthSessions(context.Background(), monthYear, page, pageSize)
		}
		if err != nil {
			return tui.SessionsLoadErrorMsg{Err: err}
		}
		return tui.SessionsPageMsg{Page: *result}
	}
}

// LoadTimelineCmd fetches the month timeline for the history filter.
func LoadTimelineCmd(client *history.Client) tea.Cmd {
	return func() tea.Msg {
		timeline, err := client.GetTimeline(context.Background())
		return tui.TimelineMsg{Timeline: timeline, Err: err}
	}
}
