package report

import (
	"regexp"
	"strconv"
)

// Band is the display urgency of a similarity score.
type Band int

const (
	BandCritical   Band = iota // below 20
	BandWarning                // 20 through 59
	BandAcceptable             // 60 and up
)

var scorePattern = regexp.MustCompile(`(\d+)%`)

// Score extracts the similarity score: the first integer immediately
// followed by "%" in the text. ok is false when no score is present.
func Score(text string) (score int, ok bool) {
	match := scorePattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ScoreBand classifies a similarity score.
func ScoreBand(score int) Band {
	switch {
	case score < 20:
		return BandCritical
	case score < 60:
		return BandWarning
	default:
		return BandAcceptable
	}
}
