// show.go implements the "eareview show" command for one stored session.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohan-con17/ea-review-fe/internal/config"
	"github.com/mohan-con17/ea-review-fe/internal/history"
	"github.com/mohan-con17/ea-review-fe/internal/log"
)

var (
	showMonth string
	showYear  string
	showDate  string
	showRaw   bool
)

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the report of a stored review session",
	Long: `Fetch one session from the archive and print its report.
Month, year, and date narrow the lookup for month-scoped archives.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ref := history.Ref{
		SessionID: args[0],
		Month:     showMonth,
		Year:      showYear,
		Date:      showDate,
	}

	session, err := historyClient(cfg).Resolve(cmd.Context(), ref)
	if err != nil {
		return err
	}

	if logger, lerr := log.NewLogger(config.DefaultDir()); lerr == nil {
		_ = logger.Append(log.LogEvent{
			Event:     log.EventSessionViewed,
			SessionID: args[0],
			ReviewID:  session.ReviewID,
		})
	}

	if showRaw {
		fmt.Println(string(session.Raw))
		return nil
	}

	if session.SummaryText == "" {
		return fmt.Errorf("session %s has no report text", args[0])
	}

	printReport(session.ReviewID, session.SummaryText)
	return nil
}

func init() {
	showCmd.Flags().StringVar(&showMonth, "month", "", `Month abbreviation, e.g. "Nov"`)
	showCmd.Flags().StringVar(&showYear, "year", "", `Year, e.g. "2025"`)
	showCmd.Flags().StringVar(&showDate, "date", "", "Date as DD-MM-YYYY")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the raw session record instead of the report")
}
