// history.go implements the "eareview history" command showing local runs.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mohan-con17/ea-review-fe/internal/config"
	"github.com/mohan-con17/ea-review-fe/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show reviews launched from this machine",
	Long: `List the local run journal: reviews submitted from this machine,
their outcome, and the similarity score when one was extracted.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := filepath.Join(config.DefaultDir(), ".eareview", "runs.db")
	runStore, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer runStore.Close()

	runs, err := runStore.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No local runs yet. Start one with: eareview review")
		return nil
	}

	fmt.Printf("%-16s  %-10s  %-6s  %-36s  %s\n", "WHEN", "STATUS", "SCORE", "REVIEW", "MESSAGE")
	for _, run := range runs {
		score := "—"
		if run.ScoreKnown {
			score = fmt.Sprintf("%d%%", run.Score)
		}
		reviewID := run.ReviewID
		if reviewID == "" {
			reviewID = "—"
		}
		message := run.Message
		if len(message) > 40 {
			message = message[:37] + "..."
		}
		fmt.Printf("%-16s  %-10s  %-6s  %-36s  %s\n",
			run.CreatedAt.Format("2006-01-02 15:04"), run.Status, score, reviewID, message)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to show")
}
