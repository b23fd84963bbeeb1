// print.go renders review reports for plain terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/mohan-con17/ea-review-fe/internal/report"
)

// printReport writes the structured report for the given summary text.
func printReport(reviewID, summaryText string) {
	if reviewID != "" {
		fmt.Printf("Review: %s\n", reviewID)
	}

	if score, ok := report.Score(summaryText); ok {
		fmt.Printf("Similarity: %d%% (%s)\n", score, bandLabel(report.ScoreBand(score)))
	}
	fmt.Println()

	sections := report.ParseSections(summaryText)
	if sections.Empty() {
		fmt.Println("The review produced no report text.")
		return
	}

	printSection("Executive Summary", sections.Executive)
	printSection("Strengths", sections.Strengths)
	printSection("Best Practice", sections.BestPractice)
	printSection("Recommendations", sections.Recommendations)
}

func printSection(title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Println(title)
	fmt.Println(strings.Repeat("-", len(title)))
	for _, line := range lines {
		fmt.Printf("  - %s\n", flattenSpans(line))
	}
	fmt.Println()
}

// flattenSpans strips emphasis markers while keeping the text readable in
// plain output.
func flattenSpans(line string) string {
	var b strings.Builder
	for _, span := range report.Spans(line) {
		b.WriteString(span.Text)
	}
	return b.String()
}

func bandLabel(band report.Band) string {
	switch band {
	case report.BandAcceptable:
		return "acceptable"
	case report.BandWarning:
		return "needs attention"
	default:
		return "critical"
	}
}
