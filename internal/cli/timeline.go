// timeline.go implements the "eareview timeline" command.
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show which months have recorded sessions",
	RunE:  runTimeline,
}

func runTimeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	timeline, err := historyClient(cfg).GetTimeline(cmd.Context())
	if err != nil {
		return err
	}
	if len(timeline) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	years := make([]string, 0, len(timeline))
	for year := range timeline {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	for _, year := range years {
		fmt.Printf("%s: %s\n", year, strings.Join(timeline[year], ", "))
	}
	return nil
}
