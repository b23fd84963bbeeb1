package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan-con17/ea-review-fe/internal/testutil"
)

func TestSampleSummaryReduction(t *testing.T) {
	text := testutil.SampleSummary()

	sections := ParseSections(text)
	require.Len(t, sections.Executive, 1)
	assert.Equal(t, []string{"Clear separation between ingestion and processing"}, sections.Strengths)
	assert.Equal(t, []string{"Event sourcing is the recommended pattern here"}, sections.BestPractice)
	assert.Equal(t, []string{"Add a dead-letter queue to the intake topic"}, sections.Recommendations)

	score, ok := Score(text)
	require.True(t, ok)
	assert.Equal(t, 78, score)
	assert.Equal(t, BandAcceptable, ScoreBand(score))
}
