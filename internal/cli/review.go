// review.go implements the "eareview review" one-shot streaming command.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mohan-con17/ea-review-fe/internal/attach"
	"github.com/mohan-con17/ea-review-fe/internal/config"
	"github.com/mohan-con17/ea-review-fe/internal/history"
	"github.com/mohan-con17/ea-review-fe/internal/log"
	"github.com/mohan-con17/ea-review-fe/internal/report"
	"github.com/mohan-con17/ea-review-fe/internal/review"
	"github.com/mohan-con17/ea-review-fe/internal/store"
	"github.com/mohan-con17/ea-review-fe/internal/ui"
)

var attachPaths []string

var reviewCmd = &cobra.Command{
	Use:   "review [message]",
	Short: "Submit an architecture for review and stream the result",
	Long: `Send a message and optional attachments to the review pipeline,
stream the stage progress, and print the final report.

The first JSON attachment is sent as structured metadata; an image or PDF
is sent inline; any other attachment is sent as text.`,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	message := strings.TrimSpace(strings.Join(args, " "))

	records, readErrs := attach.ReadAll(attachPaths)
	for _, readErr := range readErrs {
		fmt.Fprintf(os.Stderr, "warning: %v (skipped)\n", readErr)
	}

	payload, err := review.BuildPayload(message, records)
	if err != nil {
		return fmt.Errorf("nothing to review: provide a message or a readable attachment")
	}

	logger, runStore := openJournal()
	var runID string
	if runStore != nil {
		defer runStore.Close()
		if run, err := runStore.CreateRun("cli", message); err == nil {
			runID = run.ID
			for _, rec := range records {
				_ = runStore.AddAttachment(runID, rec.Name, rec.MimeType, rec.SizeBytes)
			}
		}
	}
	journal(logger, log.LogEvent{Event: log.EventReviewStarted, Source: "cli"})

	title := message
	if title == "" && len(records) > 0 {
		title = records[0].Name
	}
	progress := ui.NewStageProgress(title)
	progress.Start()

	started := time.Now()
	result, err := reviewClient(cfg).Stream(cmd.Context(), payload, func(event review.StageEvent) {
		if event.Stage == review.AgentsStage {
			return
		}
		progress.Observe(event.Stage, event.Status)
		journal(logger, log.LogEvent{
			Event:  log.EventStageAdvanced,
			Stage:  event.Stage,
			Status: event.Status,
		})
	})
	if err != nil {
		progress.Finish(false)
		if runStore != nil && runID != "" {
			_ = runStore.FailRun(runID, err.Error())
		}
		journal(logger, log.LogEvent{
			Event:      log.EventReviewFailed,
			Error:      err.Error(),
			DurationMs: time.Since(started).Milliseconds(),
		})
		return err
	}
	progress.Finish(true)

	summaryText := resolveSummary(cmd.Context(), cfg, result)
	score, scoreKnown := report.Score(summaryText)

	if runStore != nil && runID != "" {
		_ = runStore.CompleteRun(runID, result.ReviewID, score, scoreKnown)
	}
	journal(logger, log.LogEvent{
		Event:      log.EventReviewCompleted,
		ReviewID:   result.ReviewID,
		Score:      score,
		DurationMs: time.Since(started).Milliseconds(),
	})

	fmt.Println()
	printReport(result.ReviewID, summaryText)
	return nil
}

// resolveSummary prefers the persisted session copy of the report, falling
// back to the streamed result when the fetch fails.
func resolveSummary(ctx context.Context, cfg *config.Config, result *review.Result) string {
	streamed, _ := result.SummaryText()

	if result.ReviewID == "" {
		return streamed
	}
	session, err := historyClient(cfg).Resolve(ctx, history.Ref{SessionID: result.ReviewID})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return streamed
	}
	if session.SummaryText != "" {
		return session.SummaryText
	}
	return streamed
}

// openJournal opens the local run journal. Both pieces are best-effort: a
// failure disables recording without failing the review.
func openJournal() (*log.Logger, *store.Store) {
	dir := config.DefaultDir()

	logger, err := log.NewLogger(dir)
	if err != nil {
		logger = nil
	}

	runStore, err := store.NewStore(filepath.Join(dir, ".eareview", "runs.db"))
	if err != nil {
		runStore = nil
	}
	return logger, runStore
}

func journal(logger *log.Logger, event log.LogEvent) {
	if logger == nil {
		return
	}
	_ = logger.Append(event)
}

func init() {
	reviewCmd.Flags().StringSliceVarP(&attachPaths, "attach", "a", nil, "File to attach (repeatable)")
}
