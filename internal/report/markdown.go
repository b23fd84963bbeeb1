package report

import "strings"

// SpanStyle is the emphasis applied to one span of report text.
type SpanStyle int

const (
	SpanPlain SpanStyle = iota
	SpanItalic
	SpanBold
	SpanBoldItalic
)

// Span is a run of text with a single style.
type Span struct {
	Text  string
	Style SpanStyle
}

// emphasis markers in priority order: the longest marker wins at any
// position, so "***" is never misread as "**" + "*".
var markers = []struct {
	token string
	style SpanStyle
}{
	{"***", SpanBoldItalic},
	{"**", SpanBold},
	{"*", SpanItalic},
}

// Spans tokenizes inline emphasis in a single left-to-right scan. Matches
// are non-overlapping and non-nested: once a token is consumed, scanning
// resumes strictly after it. Marker content must be non-empty and free of
// "*"; unmatched "*" characters pass through as plain text.
func Spans(text string) []Span {
	var spans []Span
	plainStart := 0
	i := 0

	appendPlain := func(end int) {
		if end > plainStart {
			spans = append(spans, Span{Text: text[plainStart:end], Style: SpanPlain})
		}
	}

	for i < len(text) {
		if text[i] != '*' {
			i++
			continue
		}

		matched := false
		for _, m := range markers {
			content, width, ok := matchMarker(text[i:], m.token)
			if !ok {
				continue
			}
			appendPlain(i)
			spans = append(spans, Span{Text: content, Style: m.style})
			i += width
			plainStart = i
			matched = true
			break
		}
		if !matched {
			// Literal asterisk; stays in the pending plain run.
			i++
		}
	}
	appendPlain(len(text))
	return spans
}

// matchMarker tries to match token+content+token at the start of s, where
// content is one or more non-"*" characters. Returns the content and the
// total width consumed.
func matchMarker(s, token string) (content string, width int, ok bool) {
	if !strings.HasPrefix(s, token) {
		return "", 0, false
	}
	rest := s[len(token):]

	end := strings.IndexByte(rest, '*')
	if end <= 0 {
		return "", 0, false
	}
	if !strings.HasPrefix(rest[end:], token) {
		return "", 0, false
	}
	return rest[:end], len(token)*2 + end, true
}
