package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamHandler writes the given frames as one streamed response.
func streamHandler(t *testing.T, frames ...string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/review" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, frame := range frames {
			_, _ = w.Write([]byte(frame))
			flusher.Flush()
		}
	}
}

func stageFrame(stage, status string) string {
	return "event:stage\ndata:{\"stage\":\"" + stage + "\",\"status\":\"" + status + "\"}\n\n"
}

func TestStreamCallbackOrder(t *testing.T) {
	srv := httptest.NewServer(streamHandler(t,
		stageFrame("context_stage", "started"),
		stageFrame("context_stage", "completed"),
		"event:final\ndata:{\"review_id\":\"rev-9\",\"summary\":\"# Stage 1\\nfine\"}\n\n",
	))
	defer srv.Close()

	var stages []StageEvent
	result, err := NewClient(srv.URL).Stream(context.Background(),
		Payload{TextContent: "check this"},
		func(e StageEvent) { stages = append(stages, e) })

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "rev-9", result.ReviewID)

	require.Len(t, stages, 2)
	assert.Equal(t, "started", stages[0].Status)
	assert.Equal(t, "completed", stages[1].Status)

	text, ok := result.SummaryText()
	require.True(t, ok)
	assert.Equal(t, "# Stage 1\nfine", text)
}

func TestStreamIgnoresFramesAfterFinal(t *testing.T) {
	srv := httptest.NewServer(streamHandler(t,
		"event:final\ndata:{\"review_id\":\"rev-1\"}\n\n",
		stageFrame("late_stage", "started"),
	))
	defer srv.Close()

	var stages []StageEvent
	result, err := NewClient(srv.URL).Stream(context.Background(), Payload{TextContent: "x"},
		func(e StageEvent) { stages = append(stages, e) })

	require.NoError(t, err)
	assert.Equal(t, "rev-1", result.ReviewID)
	assert.Empty(t, stages, "no events after stream completion")
}

func TestStreamErrorFrame(t *testing.T) {
	srv := httptest.NewServer(streamHandler(t,
		stageFrame("context_stage", "started"),
		"event:error\ndata:{\"error\":\"pipeline exploded\"}\n\n",
	))
	defer srv.Close()

	result, err := NewClient(srv.URL).Stream(context.Background(), Payload{TextContent: "x"}, nil)

	require.Nil(t, result)
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "pipeline exploded", appErr.Message)
}

func TestStreamOpenErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"model offline"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Stream(context.Background(), Payload{TextContent: "x"}, nil)

	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, http.StatusServiceUnavailable, openErr.Status)
	assert.Contains(t, openErr.Body, "model offline")
}

func TestStreamEOFWithoutFinalIsTransportError(t *testing.T) {
	srv := httptest.NewServer(streamHandler(t, stageFrame("context_stage", "started")))
	defer srv.Close()

	result, err := NewClient(srv.URL).Stream(context.Background(), Payload{TextContent: "x"}, nil)

	require.Nil(t, result)
	var te *TransportError
	require.ErrorAs(t, err, &te)
}

func TestStreamFinalInTrailingUnterminatedFrame(t *testing.T) {
	// Final frame without the closing blank line; Flush recovers it at EOF.
	srv := httptest.NewServer(streamHandler(t,
		stageFrame("formatting_stage", "completed"),
		"event:final\ndata:{\"review_id\":\"rev-7\"}",
	))
	defer srv.Close()

	result, err := NewClient(srv.URL).Stream(context.Background(), Payload{TextContent: "x"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "rev-7", result.ReviewID)
}

func TestStreamDropsMalformedFrames(t *testing.T) {
	srv := httptest.NewServer(streamHandler(t,
		"event:stage\ndata:not json\n\n",
		stageFrame("context_stage", "completed"),
		"event:final\ndata:{\"review_id\":\"rev-2\"}\n\n",
	))
	defer srv.Close()

	var stages []StageEvent
	result, err := NewClient(srv.URL).Stream(context.Background(), Payload{TextContent: "x"},
		func(e StageEvent) { stages = append(stages, e) })

	require.NoError(t, err)
	assert.Equal(t, "rev-2", result.ReviewID)
	require.Len(t, stages, 1, "malformed frame degrades to a dropped event")
}

func TestStreamRequestBodyShape(t *testing.T) {
	var got map[string]map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("event:final\ndata:{\"review_id\":\"rev-3\"}\n\n"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Stream(context.Background(), Payload{TextContent: "hello"}, nil)
	require.NoError(t, err)

	metadata, ok := got["metadata"]
	require.True(t, ok)
	assert.Equal(t, map[string]any{"text_content": "hello"}, metadata)
}
