package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan-con17/ea-review-fe/internal/history"
	"github.com/mohan-con17/ea-review-fe/internal/review"
)

func resultWithSummary(t *testing.T, reviewID, summary string) *review.Result {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"review_id": reviewID, "summary": summary})
	require.NoError(t, err)

	var result review.Result
	require.NoError(t, json.Unmarshal(raw, &result))
	return &result
}

func TestViewLivePath(t *testing.T) {
	v := NewView()
	assert.Equal(t, PhaseIdle, v.Phase())

	v.StartStream()
	assert.Equal(t, PhaseStreaming, v.Phase())

	v.AddStage(review.StageEvent{Stage: "context_stage", Status: "started"})
	v.AddStage(review.StageEvent{Stage: "context_stage", Status: "completed"})

	current, ok := v.CurrentStage()
	require.True(t, ok)
	assert.Equal(t, "completed", current.Status)
	assert.Len(t, v.Stages(), 2, "all stage events are retained in order")

	v.SetResult(resultWithSummary(t, "rev-1", "# Stage 1\nfrom live"))
	assert.Equal(t, PhaseResolving, v.Phase())

	v.SetSession(&history.Session{ReviewID: "rev-1", SummaryText: "# Stage 1\nfrom store"})
	assert.Equal(t, PhaseResolved, v.Phase())

	// The live result takes precedence over the persisted copy.
	text, ok := v.SummaryText()
	require.True(t, ok)
	assert.Equal(t, "# Stage 1\nfrom live", text)
	assert.Equal(t, "rev-1", v.ReviewID())
}

func TestViewHistoryPath(t *testing.T) {
	v := NewView()
	v.BeginResolve()
	assert.Equal(t, PhaseResolving, v.Phase())

	v.SetSession(&history.Session{ReviewID: "rev-2", SummaryText: "# Stage 2\nstrength"})
	assert.Equal(t, PhaseResolved, v.Phase())

	sections, ok := v.Report()
	require.True(t, ok)
	assert.Equal(t, []string{"strength"}, sections.Strengths)
}

func TestViewAgentsStageFiltered(t *testing.T) {
	v := NewView()
	v.StartStream()
	v.AddStage(review.StageEvent{Stage: review.AgentsStage, Status: "started"})

	_, ok := v.CurrentStage()
	assert.False(t, ok, "agents_stage never reaches presentation state")
}

func TestViewResetDiscardsEverything(t *testing.T) {
	v := NewView()
	v.StartStream()
	v.AddStage(review.StageEvent{Stage: "context_stage", Status: "started"})
	v.SetResult(resultWithSummary(t, "rev-3", "text with 78%"))

	v.Reset()

	assert.Equal(t, PhaseIdle, v.Phase())
	assert.Empty(t, v.Stages())
	assert.Equal(t, "", v.ReviewID())
	_, ok := v.SummaryText()
	assert.False(t, ok)
	assert.False(t, v.Loaded())
}

func TestViewResultWithoutIDResolvesImmediately(t *testing.T) {
	v := NewView()
	v.StartStream()
	v.SetResult(resultWithSummary(t, "", "summary only"))

	assert.Equal(t, PhaseResolved, v.Phase())
}

func TestViewResolveFailedKeepsLiveResult(t *testing.T) {
	v := NewView()
	v.StartStream()
	v.SetResult(resultWithSummary(t, "rev-4", "live text"))
	require.Equal(t, PhaseResolving, v.Phase())

	v.ResolveFailed()

	assert.Equal(t, PhaseResolved, v.Phase())
	text, ok := v.SummaryText()
	require.True(t, ok)
	assert.Equal(t, "live text", text)
}

func TestViewResolveFailedHistoryPathGoesIdle(t *testing.T) {
	v := NewView()
	v.BeginResolve()

	v.ResolveFailed()

	assert.Equal(t, PhaseIdle, v.Phase())
}

func TestViewStreamFailure(t *testing.T) {
	v := NewView()
	v.StartStream()
	v.Fail()

	assert.Equal(t, PhaseFailed, v.Phase())
}

func TestViewScore(t *testing.T) {
	v := NewView()
	v.BeginResolve()
	v.SetSession(&history.Session{ReviewID: "rev-5", SummaryText: "shows 78% similarity"})

	score, ok := v.Score()
	require.True(t, ok)
	assert.Equal(t, 78, score)
	assert.Equal(t, BandAcceptable, ScoreBand(score))
}
