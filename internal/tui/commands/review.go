// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mohan-con17/ea-review-fe/internal/history"
	"github.com/mohan-con17/ea-review-fe/internal/review"
	"github.com/mohan-con17/ea-review-fe/internal/tui"
)

// StartReviewCmd launches the review stream in a background goroutine.
// Stage events and the terminal outcome are pushed to updates in wire order;
// the channel is closed when the stream ends. Cancelling ctx aborts the
// request. Returns StreamStartedMsg to signal the TUI that streaming has
// begun.
func StartReviewCmd(
	ctx context.Context,
	client *review.Client,
	payload review.Payload,
	epoch int,
	updates chan tui.StreamUpdate,
) tea.Cmd {
	return func() tea.Msg {
		go func() {
			defer close(updates)
			result, err := client.Stream(ctx, payload, func(event review.StageEvent) {
				e := event
				updates <- tui.StreamUpdate{Stage: &e}
			})
			if err != nil {
				updates <- tui.StreamUpdate{Err: err}
				return
			}
			updates <- tui.StreamUpdate{Result: result}
		}()
		return tui.StreamStartedMsg{Epoch: epoch}
	}
}

// ListenStreamCmd polls the updates channel for streaming events.
// Returns StreamEventMsg for each update, StreamClosedMsg when the channel
// closes, or TickMsg on timeout to keep polling.
func ListenStreamCmd(updates <-chan tui.StreamUpdate, epoch int) tea.Cmd {
	return func() tea.Msg {
		select {
		case update, ok := <-updates:
			if !ok {
				return tui.StreamClosedMsg{Epoch: epoch}
			}
			return tui.StreamEventMsg{Epoch: epoch, Update: update}
		case <-time.After(100 * time.Millisecond):
			return tui.TickMsg{Epoch: epoch} // keep polling
		}
	}
}

// ResolveSessionCmd fetches the persisted session for ref.
func ResolveSessionCmd(client *history.Client, ref history.Ref, epoch int) tea.Cmd {
	return func() tea.Msg {
		session, err := client.Resolve(context.Background(), ref)
		if err != nil {
			return tui.SessionLoadFailedMsg{Epoch: epoch, Err: err}
		}
		return tui.SessionResolvedMsg{Epoch: epoch, Session: session}
	}
}
