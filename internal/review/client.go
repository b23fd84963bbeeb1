package review

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mohan-con17/ea-review-fe/internal/stream"
)

// Stream event names emitted by the backend.
const (
	eventStage = "stage"
	eventFinal = "final"
	eventError = "error"
)

// Client issues streaming review requests. It holds no per-review state;
// identity for an in-flight review belongs to the caller.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a Client for the given base URL. The stream itself has
// no client-side timeout: a hung connection stays pending until the
// transport errors or ctx is cancelled.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// Stream submits payload to POST /review and reads the event stream until a
// terminal event. onStage is invoked for each stage frame in the exact order
// the bytes arrived; it may be nil. Exactly one terminal outcome: a non-nil
// Result on success, or an error (*OpenError, *AppError, *TransportError).
// No onStage call happens after the terminal outcome, and nothing is
// retried.
func (c *Client) Stream(ctx context.Context, payload Payload, onStage func(StageEvent)) (*Result, error) {
	body, err := json.Marshal(map[string]Payload{"metadata": payload})
	if err != nil {
		return nil, fmt.Errorf("review: encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/review", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("review: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &OpenError{Status: resp.StatusCode, Body: strings.TrimSpace(string(detail))}
	}

	return c.readStream(resp.Body, onStage)
}

// readStream feeds body chunks through the frame parser and dispatches
// frames until a terminal frame or read failure.
func (c *Client) readStream(body io.Reader, onStage func(StageEvent)) (*Result, error) {
	var parser stream.Parser
	buf := make([]byte, 32*1024)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if result, err, done := dispatch(parser.Feed(buf[:n]), onStage); done {
				return result, err
			}
		}
		if readErr == io.EOF {
			if result, err, done := dispatch(parser.Flush(), onStage); done {
				return result, err
			}
			return nil, &TransportError{Err: errors.New("stream closed before a terminal event")}
		}
		if readErr != nil {
			return nil, &TransportError{Err: readErr}
		}
	}
}

// dispatch routes parsed frames. done reports that a terminal frame was
// seen; any frames after it are not delivered. Frames with nil data (absent
// or invalid JSON) are dropped, which keeps the stream alive.
func dispatch(frames []stream.Frame, onStage func(StageEvent)) (*Result, error, bool) {
	for _, frame := range frames {
		if frame.Data == nil {
			continue
		}

		switch frame.Event {
		case eventStage:
			var event StageEvent
			if err := json.Unmarshal(frame.Data, &event); err != nil {
				continue
			}
			if onStage != nil {
				onStage(event)
			}

		case eventFinal:
			var result Result
			if err := json.Unmarshal(frame.Data, &result); err != nil {
				return nil, &TransportError{Err: fmt.Errorf("decoding final event: %w", err)}, true
			}
			return &result, nil, true

		case eventError:
			return nil, newAppError(frame.Data), true
		}
	}
	return nil, nil, false
}
