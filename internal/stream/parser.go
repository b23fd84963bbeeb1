// Package stream decodes the review backend's event stream into frames.
// Frames are separated by a blank line; each frame carries "event:" and
// "data:" lines in the style of server-sent events.
package stream

import (
	"encoding/json"
	"strings"
)

// DefaultEvent is the event name assumed when a frame has no "event:" line.
const DefaultEvent = "message"

// Frame is one self-contained unit of the stream protocol.
// Data is nil when the frame carried no data or the data was not valid JSON;
// such frames are dropped by callers rather than treated as errors.
type Frame struct {
	Event string
	Data  json.RawMessage
}

// Parser is a stateful accumulator that splits incoming chunks into frames.
// It buffers partial frames across Feed calls and only ever emits complete
// frames. The zero value is ready to use.
type Parser struct {
	buf []byte
}

// Feed appends chunk to the internal buffer and returns every complete frame
// now available, in wire order. A frame is complete once its terminating
// blank line (two consecutive newlines) has arrived.
func (p *Parser) Feed(chunk []byte) []Frame {
	p.buf = append(p.buf, chunk...)

	var frames []Frame
	for {
		sep := strings.Index(string(p.buf), "\n\n")
		if sep < 0 {
			break
		}
		raw := string(p.buf[:sep])
		p.buf = p.buf[sep+2:]

		if frame, ok := parseBlock(raw); ok {
			frames = append(frames, frame)
		}
	}
	return frames
}

// Flush parses whatever remains in the buffer as a final frame. It is called
// at end of stream, where the closing blank line may never arrive.
func (p *Parser) Flush() []Frame {
	raw := string(p.buf)
	p.buf = nil

	if frame, ok := parseBlock(raw); ok {
		return []Frame{frame}
	}
	return nil
}

// parseBlock decodes one frame block. Blocks with no event or data lines are
// skipped (ok == false). Data is the concatenation of all "data:" payloads,
// trimmed per line and joined without a delimiter, kept only when it parses
// as JSON.
func parseBlock(raw string) (Frame, bool) {
	if strings.TrimSpace(raw) == "" {
		return Frame{}, false
	}

	event := DefaultEvent
	var data strings.Builder

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimSpace(line[len("data:"):]))
		}
	}

	frame := Frame{Event: event}
	if text := data.String(); text != "" && json.Valid([]byte(text)) {
		frame.Data = json.RawMessage(text)
	}
	return frame, true
}
