// Package history fetches persisted review sessions from the backend's
// /logs API and normalizes them to the same shape the live stream produces.
package history

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Ref identifies a persisted session. SessionID alone is enough for the
// all-time lookup; Date/Month/Year disambiguate month-scoped archives.
type Ref struct {
	SessionID string
	Date      string // DD-MM-YYYY
	Month     string // "Nov"
	Year      string // "2025"
}

// Session is a persisted review normalized to the live-result contract.
type Session struct {
	ReviewID    string
	SummaryText string
	Raw         json.RawMessage
}

// LoadError reports a session fetch failure. Non-fatal: callers show a
// notice and leave the view empty.
type LoadError struct {
	SessionID string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("history: loading session %s: %v", e.SessionID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Item is one session row from the paginated listings.
type Item struct {
	SessionID string `json:"session_id"`
	ReviewID  string `json:"review_id"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	MonthYear string `json:"month_year"`
	Date      string `json:"date"`
}

// Page is one page of session metadata.
type Page struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Total    int    `json:"total"`
	Items    []Item `json:"items"`
}

// HasMore reports whether another page exists. When the backend omits the
// total, a full page is assumed to have a successor.
func (p *Page) HasMore() bool {
	if p.Total > 0 {
		return p.Page*p.PageSize < p.Total
	}
	return len(p.Items) == p.PageSize
}

// Timeline maps years to month abbreviations that have recorded sessions.
type Timeline map[string][]string

var datePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// DateLabel returns the display date for the item: the date field when it is
// already DD-MM-YYYY, else the positional date segment of the storage path,
// else the timestamp reformatted, else an em dash.
func (it Item) DateLabel() string {
	if datePattern.MatchString(it.Date) {
		return it.Date
	}
	if d := DateFromPath(it.Path); d != "" {
		return d
	}
	if ts, err := time.Parse(time.RFC3339, it.Timestamp); err == nil {
		return ts.Format("02-01-2006")
	}
	return "—"
}

// Ref builds the resolve reference for the item, splitting the "Mon YYYY"
// label into its disambiguation fields.
func (it Item) Ref() Ref {
	ref := Ref{SessionID: it.SessionID, Date: it.DateLabel()}
	if ref.Date == "—" {
		ref.Date = ""
	}
	if month, year, ok := strings.Cut(it.MonthYear, " "); ok {
		ref.Month, ref.Year = month, year
	}
	return ref
}

// DateFromPath extracts the DD-MM-YYYY segment from a storage path of the
// form "<Month Year>/<DD-MM-YYYY>/<file>". The segment is taken by position,
// not parsed generically.
func DateFromPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) >= 2 && datePattern.MatchString(parts[1]) {
		return parts[1]
	}
	return ""
}

// MonthLabels returns the "Mon YYYY" labels for the last n months before
// now, keeping only months present in the timeline. If the intersection is
// empty the plain last-n list is returned, mirroring an empty or
// unreachable timeline.
func MonthLabels(tl Timeline, now time.Time, n int) []string {
	available := make(map[string]bool)
	for year, months := range tl {
		for _, m := range months {
			if m != "" {
				available[m+" "+year] = true
			}
		}
	}

	// Anchor at the first of the month so month arithmetic never skips a
	// short month.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var all, filtered []string
	for i := 0; i < n; i++ {
		d := anchor.AddDate(0, -i, 0)
		label := d.Format("Jan 2006")
		all = append(all, label)
		if available[label] {
			filtered = append(filtered, label)
		}
	}

	if len(filtered) > 0 {
		return filtered
	}
	return all
}
