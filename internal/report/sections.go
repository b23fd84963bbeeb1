// Package report reduces review output into the presentation model: the
// structured report sections, similarity score, inline emphasis spans, and
// the view state machine that unifies live and historical reviews.
package report

import (
	"strings"
)

// Sections is the structural parse of a review summary.
type Sections struct {
	Executive       []string
	Strengths       []string
	BestPractice    []string
	Recommendations []string
}

// Empty reports whether no section has content.
func (s Sections) Empty() bool {
	return len(s.Executive) == 0 && len(s.Strengths) == 0 &&
		len(s.BestPractice) == 0 && len(s.Recommendations) == 0
}

// ParseSections splits the summary text into the four report buckets in a
// single left-to-right pass. "# stage N" markers (case-insensitive) switch
// the active bucket and stay sticky until the next marker; other "#" lines
// are headers and are dropped; blank lines and "---" separators are skipped;
// content lines land in the current bucket with bullet markers stripped.
// The initial bucket is Executive.
func ParseSections(summaryText string) Sections {
	s := Sections{
		Executive:       []string{},
		Strengths:       []string{},
		BestPractice:    []string{},
		Recommendations: []string{},
	}

	current := &s.Executive
	for _, line := range strings.Split(summaryText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "---") {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "# stage 1"):
			current = &s.Executive
		case strings.HasPrefix(lower, "# stage 2"):
			current = &s.Strengths
		case strings.HasPrefix(lower, "# stage 3"):
			current = &s.BestPractice
		case strings.HasPrefix(lower, "# stage 4"):
			current = &s.Recommendations
		case strings.HasPrefix(line, "#"):
			// Section header, rendered by the bucket itself.
		default:
			*current = append(*current, StripBullet(line))
		}
	}
	return s
}

// StripBullet removes a leading "-" or "•" marker and its following
// whitespace.
func StripBullet(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"-", "•"} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
		}
	}
	return trimmed
}

// HumanizeTag turns backend stage/status tags ("formatting_stage",
// "reviewStarted") into spaced Title Case for display.
func HumanizeTag(tag string) string {
	if tag == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range tag {
		switch {
		case r == '_':
			b.WriteByte(' ')
		case r >= 'A' && r <= 'Z' && i > 0 && isLower(rune(tag[i-1])):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

// StatusTone classifies a free-form stage status for display urgency.
type StatusTone int

const (
	ToneNeutral StatusTone = iota // unrecognized or empty status
	ToneInfo                      // in progress
	ToneOK                        // finished successfully
	ToneAlert                     // failed
)

// ToneOf maps a status string to its display tone by substring. Unknown
// vocabulary degrades to ToneNeutral rather than an alarming color.
func ToneOf(status string) StatusTone {
	lower := strings.ToLower(status)
	switch {
	case lower == "":
		return ToneNeutral
	case strings.Contains(lower, "started") || strings.Contains(lower, "running"):
		return ToneInfo
	case strings.Contains(lower, "completed") || strings.Contains(lower, "success"):
		return ToneOK
	case strings.Contains(lower, "fail") || strings.Contains(lower, "error"):
		return ToneAlert
	default:
		return ToneNeutral
	}
}
