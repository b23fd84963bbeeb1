package report

import (
	"github.com/mohan-con17/ea-review-fe/internal/history"
	"github.com/mohan-con17/ea-review-fe/internal/review"
)

// Phase is the lifecycle state of a review view.
type Phase int

const (
	PhaseIdle      Phase = iota
	PhaseStreaming       // live stream in progress
	PhaseResolving       // terminal event seen, fetching the persisted copy
	PhaseResolved        // report available
	PhaseFailed          // stream failed
)

// View merges live stream events, the terminal result, and the resolved
// persisted session into one presentation model. At most one of live stream
// and resolved session is active; any identity change goes through Reset,
// which discards all prior state atomically.
type View struct {
	phase   Phase
	stages  []review.StageEvent
	result  *review.Result
	session *history.Session
}

// NewView returns an idle view.
func NewView() *View {
	return &View{phase: PhaseIdle}
}

// Phase returns the current lifecycle phase.
func (v *View) Phase() Phase { return v.phase }

// Reset discards all state and returns to Idle. Called whenever the view's
// identity changes; stale stream callbacks must be dropped by the caller's
// epoch guard before they reach the new view.
func (v *View) Reset() {
	*v = View{phase: PhaseIdle}
}

// StartStream resets the view and enters Streaming.
func (v *View) StartStream() {
	v.Reset()
	v.phase = PhaseStreaming
}

// BeginResolve resets the view and enters Resolving directly, for the
// pure-history path where no live stream precedes the fetch.
func (v *View) BeginResolve() {
	v.Reset()
	v.phase = PhaseResolving
}

// AddStage appends a stage event to the ordered history. The backend's
// internal agents_stage signal is filtered out before it reaches state.
func (v *View) AddStage(event review.StageEvent) {
	if event.Stage == review.AgentsStage {
		return
	}
	v.stages = append(v.stages, event)
}

// CurrentStage returns the most recent stage event.
func (v *View) CurrentStage() (review.StageEvent, bool) {
	if len(v.stages) == 0 {
		return review.StageEvent{}, false
	}
	return v.stages[len(v.stages)-1], true
}

// Stages returns the ordered stage-event history.
func (v *View) Stages() []review.StageEvent { return v.stages }

// SetResult records the terminal result. When the result names a persisted
// review the view enters Resolving, waiting for the canonical copy; without
// an id there is nothing to fetch and the view resolves immediately.
func (v *View) SetResult(result *review.Result) {
	v.result = result
	if result != nil && result.ReviewID != "" {
		v.phase = PhaseResolving
	} else {
		v.phase = PhaseResolved
	}
}

// SetSession records the fetched persisted session and resolves the view.
func (v *View) SetSession(session *history.Session) {
	v.session = session
	v.phase = PhaseResolved
}

// ResolveFailed handles a session fetch failure. After a live stream the
// terminal result still carries the report, so the view resolves with it;
// the pure-history path has nothing to show and returns to Idle.
func (v *View) ResolveFailed() {
	if v.result != nil {
		v.phase = PhaseResolved
	} else {
		v.phase = PhaseIdle
	}
}

// Fail marks the stream as terminally failed.
func (v *View) Fail() {
	v.phase = PhaseFailed
}

// ReviewID returns the id of the effective review: the live result takes
// precedence over the resolved session.
func (v *View) ReviewID() string {
	if v.result != nil && v.result.ReviewID != "" {
		return v.result.ReviewID
	}
	if v.session != nil {
		return v.session.ReviewID
	}
	return ""
}

// SummaryText returns the report text of the effective review.
func (v *View) SummaryText() (string, bool) {
	if v.result != nil {
		if text, ok := v.result.SummaryText(); ok {
			return text, true
		}
	}
	if v.session != nil && v.session.SummaryText != "" {
		return v.session.SummaryText, true
	}
	return "", false
}

// Loaded reports whether an effective review is available to render.
func (v *View) Loaded() bool {
	if _, ok := v.SummaryText(); ok {
		return true
	}
	return v.ReviewID() != ""
}

// Report parses the effective summary into sections.
func (v *View) Report() (Sections, bool) {
	text, ok := v.SummaryText()
	if !ok {
		return Sections{}, false
	}
	return ParseSections(text), true
}

// Score extracts the similarity score from the effective summary.
func (v *View) Score() (int, bool) {
	text, ok := v.SummaryText()
	if !ok {
		return 0, false
	}
	return Score(text)
}
