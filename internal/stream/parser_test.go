package stream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedSingleFrame(t *testing.T) {
	var p Parser
	frames := p.Feed([]byte("event:stage\ndata:{\"a\":1}\n\n"))

	require.Len(t, frames, 1)
	assert.Equal(t, "stage", frames[0].Event)
	assert.JSONEq(t, `{"a":1}`, string(frames[0].Data))
}

func TestFeedByteByByte(t *testing.T) {
	var p Parser
	input := []byte("event:stage\ndata:{\"a\":1}\n\n")

	var frames []Frame
	for i, b := range input {
		got := p.Feed([]byte{b})
		if i < len(input)-1 {
			require.Empty(t, got, "no frame before the blank line completes (byte %d)", i)
		}
		frames = append(frames, got...)
	}

	require.Len(t, frames, 1)
	assert.Equal(t, "stage", frames[0].Event)
	assert.JSONEq(t, `{"a":1}`, string(frames[0].Data))
}

func TestFeedConcatenatesDataLines(t *testing.T) {
	var p Parser
	frames := p.Feed([]byte("event:final\ndata:{\"a\":\ndata:1}\n\n"))

	require.Len(t, frames, 1)
	assert.JSONEq(t, `{"a":1}`, string(frames[0].Data))
}

func TestFeedMultipleFramesInOneChunk(t *testing.T) {
	var p Parser
	frames := p.Feed([]byte("event:stage\ndata:{\"n\":1}\n\nevent:stage\ndata:{\"n\":2}\n\nevent:final\ndata:{}\n\n"))

	require.Len(t, frames, 3)
	assert.Equal(t, "stage", frames[0].Event)
	assert.Equal(t, "stage", frames[1].Event)
	assert.Equal(t, "final", frames[2].Event)
	assert.JSONEq(t, `{"n":2}`, string(frames[1].Data))
}

func TestFrameSplitAcrossChunks(t *testing.T) {
	var p Parser

	require.Empty(t, p.Feed([]byte("event:stage\nda")))
	require.Empty(t, p.Feed([]byte("ta:{\"ok\":true}\n")))
	frames := p.Feed([]byte("\nevent:stage\n"))

	require.Len(t, frames, 1)
	assert.JSONEq(t, `{"ok":true}`, string(frames[0].Data))
}

func TestDefaultEventName(t *testing.T) {
	var p Parser
	frames := p.Feed([]byte("data:{\"x\":1}\n\n"))

	require.Len(t, frames, 1)
	assert.Equal(t, DefaultEvent, frames[0].Event)
}

func TestInvalidJSONDataIsNil(t *testing.T) {
	var p Parser
	frames := p.Feed([]byte("event:stage\ndata:not json\n\n"))

	require.Len(t, frames, 1)
	assert.Nil(t, frames[0].Data)
}

func TestDataWhitespaceTrimmedPerLine(t *testing.T) {
	var p Parser
	frames := p.Feed([]byte("event:stage\ndata:  {\"a\":  \ndata:  1}  \n\n"))

	require.Len(t, frames, 1)
	// Leading/trailing space on each data line goes away; interior space stays.
	assert.Equal(t, json.RawMessage(`{"a":1}`), frames[0].Data)
}

func TestBlankBlocksSkipped(t *testing.T) {
	var p Parser
	frames := p.Feed([]byte("\n\n  \n\nevent:stage\ndata:{}\n\n"))

	require.Len(t, frames, 1)
	assert.Equal(t, "stage", frames[0].Event)
}

func TestFlushEmitsTrailingFrame(t *testing.T) {
	var p Parser

	require.Empty(t, p.Feed([]byte("event:final\ndata:{\"review_id\":\"r1\"}")))
	frames := p.Flush()

	require.Len(t, frames, 1)
	assert.Equal(t, "final", frames[0].Event)
	assert.JSONEq(t, `{"review_id":"r1"}`, string(frames[0].Data))

	assert.Empty(t, p.Flush(), "flush drains the buffer")
}

func TestFlushEmptyBuffer(t *testing.T) {
	var p Parser
	assert.Empty(t, p.Flush())
}
