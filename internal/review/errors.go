package review

import (
	"encoding/json"
	"fmt"
)

// OpenError reports a stream request that failed before any frame arrived:
// a non-2xx response at request time.
type OpenError struct {
	Status int
	Body   string
}

func (e *OpenError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("review: opening stream: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("review: opening stream: status %d", e.Status)
}

// TransportError reports a failure while reading the stream body, including
// a stream that ended without a terminal event. Terminal; never retried.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("review: reading stream: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AppError is an explicit "error" frame from the backend pipeline.
type AppError struct {
	Message string
	Raw     json.RawMessage
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return "review: backend error: " + e.Message
	}
	return "review: backend error"
}

// newAppError extracts a display message from the undocumented error-frame
// payload, trying the common string fields before falling back to the raw
// encoding.
func newAppError(data json.RawMessage) *AppError {
	appErr := &AppError{Raw: data}
	if len(data) == 0 {
		return appErr
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		appErr.Message = s
		return appErr
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		for _, key := range []string{"error", "detail", "message"} {
			var text string
			if raw, ok := obj[key]; ok && json.Unmarshal(raw, &text) == nil && text != "" {
				appErr.Message = text
				return appErr
			}
		}
	}

	appErr.Message = string(data)
	return appErr
}
