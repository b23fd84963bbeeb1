package review

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryFieldString(t *testing.T) {
	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"review_id":"r1","summary":"all good"}`), &r))

	text, ok := r.SummaryText()
	require.True(t, ok)
	assert.Equal(t, "all good", text)
}

func TestSummaryFieldNestedObject(t *testing.T) {
	var r Result
	require.NoError(t, json.Unmarshal(
		[]byte(`{"review_id":"r1","summary":{"summary":"nested text","score":78}}`), &r))

	text, ok := r.SummaryText()
	require.True(t, ok)
	assert.Equal(t, "nested text", text)
}

func TestSummaryFieldFormattingFallback(t *testing.T) {
	var r Result
	require.NoError(t, json.Unmarshal(
		[]byte(`{"review_id":"r1","formatting_summary":"persisted text"}`), &r))

	text, ok := r.SummaryText()
	require.True(t, ok)
	assert.Equal(t, "persisted text", text)
}

func TestSummaryFieldUnknownShape(t *testing.T) {
	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"review_id":"r1","summary":[1,2]}`), &r))

	_, ok := r.SummaryText()
	assert.False(t, ok)
}

func TestSummaryFieldKeepsRaw(t *testing.T) {
	var f SummaryField
	require.NoError(t, json.Unmarshal([]byte(`{"summary":"s","score":12}`), &f))
	assert.JSONEq(t, `{"summary":"s","score":12}`, string(f.Raw()))
}
