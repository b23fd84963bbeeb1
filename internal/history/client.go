package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mohan-con17/ea-review-fe/internal/review"
)

// DefaultPageSize matches the backend's listing default.
const DefaultPageSize = 10

// Client talks to the /logs endpoints. Every call is single-shot: no retry,
// no cache, a fresh fetch per session switch.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a Client for the given base URL with the given request
// timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// AllSessions fetches one page of the all-time session listing.
func (c *Client) AllSessions(ctx context.Context, page, pageSize int) (*Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var result Page
	if err := c.getJSON(ctx, "/logs/all-sessions", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MonthSessions fetches one page of sessions scoped to a "Mon YYYY" label.
func (c *Client) MonthSessions(ctx context.Context, month string, page, pageSize int) (*Page, error) {
	q := url.Values{}
	q.Set("month", month)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var result Page
	if err := c.getJSON(ctx, "/logs/sessions", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTimeline fetches the years and months that have recorded sessions.
func (c *Client) GetTimeline(ctx context.Context) (Timeline, error) {
	var result struct {
		Timeline Timeline `json:"timeline"`
	}
	if err := c.getJSON(ctx, "/logs/timeline", nil, &result); err != nil {
		return nil, err
	}
	if result.Timeline == nil {
		result.Timeline = Timeline{}
	}
	return result.Timeline, nil
}

// Resolve fetches the full persisted session for ref and normalizes the
// response to the live-result contract. Month/year/date are forwarded only
// when set. Failures wrap as *LoadError.
func (c *Client) Resolve(ctx context.Context, ref Ref) (*Session, error) {
	q := url.Values{}
	q.Set("session_id", ref.SessionID)
	if ref.Month != "" {
		q.Set("month", ref.Month)
	}
	if ref.Year != "" {
		q.Set("year", ref.Year)
	}
	if ref.Date != "" {
		q.Set("date", ref.Date)
	}

	var body json.RawMessage
	if err := c.getJSON(ctx, "/logs/session", q, &body); err != nil {
		return nil, &LoadError{SessionID: ref.SessionID, Err: err}
	}

	session, err := normalize(body)
	if err != nil {
		return nil, &LoadError{SessionID: ref.SessionID, Err: err}
	}
	return session, nil
}

// normalize reduces the two response shapes ({"details": obj} and a bare
// obj) to a Session.
func normalize(body json.RawMessage) (*Session, error) {
	var envelope struct {
		Details json.RawMessage `json:"details"`
	}
	record := body
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Details) > 0 && string(envelope.Details) != "null" {
		record = envelope.Details
	}

	var fields struct {
		ReviewID          string              `json:"review_id"`
		Summary           review.SummaryField `json:"summary"`
		FormattingSummary review.SummaryField `json:"formatting_summary"`
	}
	if err := json.Unmarshal(record, &fields); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}

	session := &Session{ReviewID: fields.ReviewID, Raw: record}
	if text, ok := fields.Summary.Text(); ok {
		session.SummaryText = text
	} else if text, ok := fields.FormattingSummary.Text(); ok {
		session.SummaryText = text
	}
	return session, nil
}

// getJSON issues one GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
