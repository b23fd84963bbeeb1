package views

import (
	"fmt"
	"strings"

	"github.com/mohan-con17/ea-review-fe/internal/tui"
)

// RenderHistory renders the session browser tab.
func RenderHistory(m *tui.Model) string {
	var b strings.Builder

	title := "Session History"
	if m.MonthFilter != "" {
		title += "  ·  " + m.MonthFilter
	} else {
		title += "  ·  all months"
	}
	b.WriteString(tui.TitleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.Sessions) == 0 {
		b.WriteString(tui.DimStyle.Render("No sessions recorded yet."))
		b.WriteString("\n")
	}

	for i, item := range m.Sessions {
		cursor := "  "
		line := fmt.Sprintf("%-12s %s", item.DateLabel(), item.SessionID)
		if i == m.SessionCursor {
			cursor = tui.SelectedStyle.Render("> ")
			line = tui.SelectedStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	pager := fmt.Sprintf("page %d", m.Page)
	if m.HasMore {
		pager += " · n for more"
	}
	b.WriteString(tui.DimStyle.Render(pager))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("enter open · m month filter · r refresh · tab review"))

	return boxed(m, b.String())
}
