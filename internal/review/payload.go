package review

import (
	"errors"
	"strings"

	"github.com/mohan-con17/ea-review-fe/internal/attach"
)

// ErrEmptyRequest is returned when neither a message nor an attachment is
// provided.
var ErrEmptyRequest = errors.New("review: nothing to send")

// Payload is the metadata object of a review request. Exactly one field is
// populated, chosen by BuildPayload's precedence rule.
type Payload struct {
	JSONMetadata any    `json:"json_metadata,omitempty"`
	ImageURL     string `json:"arch_img_url,omitempty"`
	TextContent  string `json:"text_content,omitempty"`
}

// BuildPayload constructs the request payload from a typed message and an
// attachment batch. Precedence: a JSON attachment populates JSONMetadata, an
// image or PDF populates ImageURL, any other attachment populates
// TextContent, and only then does the typed message apply. The backend
// accepts one metadata object per review, so only the first attachment is
// used; callers surface the rest as skipped.
func BuildPayload(message string, attachments []attach.Record) (Payload, error) {
	if len(attachments) > 0 {
		first := attachments[0]
		switch {
		case strings.Contains(first.MimeType, "json"):
			return Payload{JSONMetadata: first.Content}, nil
		case strings.HasPrefix(first.MimeType, "image/") || first.MimeType == "application/pdf":
			return Payload{ImageURL: first.Text()}, nil
		default:
			return Payload{TextContent: first.Text()}, nil
		}
	}

	if text := strings.TrimSpace(message); text != "" {
		return Payload{TextContent: text}, nil
	}
	return Payload{}, ErrEmptyRequest
}
