// sessions.go implements the "eareview sessions" listing command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohan-con17/ea-review-fe/internal/history"
)

var (
	sessionsMonth    string
	sessionsPage     int
	sessionsPageSize int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded review sessions",
	Long: `List review sessions from the backend archive, newest first.
Use --month with a "Mon YYYY" label to restrict to one month.`,
	RunE: runSessions,
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := historyClient(cfg)

	pageSize := sessionsPageSize
	if pageSize <= 0 {
		pageSize = cfg.History.PageSize
	}

	var page *history.Page
	if sessionsMonth == "" {
		page, err = client.AllSessions(cmd.Context(), sessionsPage, pageSize)
	} else {
		page, err = client.MonthSessions(cmd.Context(), sessionsMonth, sessionsPage, pageSize)
	}
	if err != nil {
		return err
	}

	if len(page.Items) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	fmt.Printf("%-12s  %-40s  %s\n", "DATE", "SESSION", "MONTH")
	for _, item := range page.Items {
		fmt.Printf("%-12s  %-40s  %s\n", item.DateLabel(), item.SessionID, item.MonthYear)
	}

	fmt.Println()
	if page.Total > 0 {
		fmt.Printf("Page %d of %d sessions total\n", page.Page, page.Total)
	} else {
		fmt.Printf("Page %d\n", page.Page)
	}
	if page.HasMore() {
		fmt.Printf("More available: --page %d\n", page.Page+1)
	}
	return nil
}

func init() {
	sessionsCmd.Flags().StringVar(&sessionsMonth, "month", "", `Restrict to a month label, e.g. "Nov 2025"`)
	sessionsCmd.Flags().IntVar(&sessionsPage, "page", 1, "Page number")
	sessionsCmd.Flags().IntVar(&sessionsPageSize, "page-size", 0, "Sessions per page (0 uses the config value)")
}
