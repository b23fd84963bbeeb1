// Package review implements the streaming client for the architecture
// review backend: payload construction, the long-lived POST /review stream,
// and the typed events it produces.
package review

import (
	"encoding/json"
)

// AgentsStage is an internal backend signal interleaved with real pipeline
// stages. It never reaches presentation state.
const AgentsStage = "agents_stage"

// StageEvent is a progress notification for one pipeline phase. Later events
// supersede earlier ones as the current stage, but the full ordered sequence
// is retained for history.
type StageEvent struct {
	Stage   string          `json:"stage"`
	Status  string          `json:"status"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Result is the terminal payload of a successful stream.
type Result struct {
	ReviewID string `json:"review_id"`

	// Summary may arrive as a plain string or as an object wrapping the
	// text; FormattingSummary is the persisted fallback shape.
	Summary           SummaryField `json:"summary"`
	FormattingSummary SummaryField `json:"formatting_summary"`
}

// SummaryText returns the report text of the result, preferring the summary
// field over the formatting fallback.
func (r *Result) SummaryText() (string, bool) {
	if text, ok := r.Summary.Text(); ok {
		return text, true
	}
	return r.FormattingSummary.Text()
}

// SummaryField decodes a summary that is either a JSON string or an object
// with a string "summary" member. Unknown shapes decode to an absent value
// rather than an error.
type SummaryField struct {
	text string
	ok   bool
	raw  json.RawMessage
}

// Text returns the summary text and whether one was present.
func (f SummaryField) Text() (string, bool) { return f.text, f.ok }

// Raw returns the original JSON encoding of the field.
func (f SummaryField) Raw() json.RawMessage { return f.raw }

// UnmarshalJSON implements json.Unmarshaler.
func (f *SummaryField) UnmarshalJSON(data []byte) error {
	f.raw = append([]byte(nil), data...)
	f.text, f.ok = "", false

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.text, f.ok = s, true
		return nil
	}

	var obj struct {
		Summary *string `json:"summary"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Summary != nil {
		f.text, f.ok = *obj.Summary, true
	}
	return nil
}

// MarshalJSON round-trips the original encoding.
func (f SummaryField) MarshalJSON() ([]byte, error) {
	if f.raw == nil {
		return []byte("null"), nil
	}
	return f.raw, nil
}
