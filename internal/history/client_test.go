package history

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDetailsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logs/session", r.URL.Path)
		assert.Equal(t, "s-1", r.URL.Query().Get("session_id"))
		_, _ = w.Write([]byte(`{"details":{"review_id":"r-1","summary":"# Stage 1\ntext"}}`))
	}))
	defer srv.Close()

	session, err := NewClient(srv.URL, time.Second).Resolve(context.Background(), Ref{SessionID: "s-1"})
	require.NoError(t, err)
	assert.Equal(t, "r-1", session.ReviewID)
	assert.Equal(t, "# Stage 1\ntext", session.SummaryText)
}

func TestResolveBareObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"review_id":"r-2","summary":{"summary":"nested"}}`))
	}))
	defer srv.Close()

	session, err := NewClient(srv.URL, time.Second).Resolve(context.Background(), Ref{SessionID: "s-2"})
	require.NoError(t, err)
	assert.Equal(t, "r-2", session.ReviewID)
	assert.Equal(t, "nested", session.SummaryText)
}

func TestResolveForwardsScopeParams(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"review_id":"r-3"}`))
	}))
	defer srv.Close()

	ref := Ref{SessionID: "s-3", Month: "Nov", Year: "2025", Date: "12-11-2025"}
	_, err := NewClient(srv.URL, time.Second).Resolve(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, []string{"Nov"}, query["month"])
	assert.Equal(t, []string{"2025"}, query["year"])
	assert.Equal(t, []string{"12-11-2025"}, query["date"])
}

func TestResolveOmitsEmptyScopeParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("month"))
		assert.False(t, r.URL.Query().Has("year"))
		assert.False(t, r.URL.Query().Has("date"))
		_, _ = w.Write([]byte(`{"review_id":"r-4"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Resolve(context.Background(), Ref{SessionID: "s-4"})
	require.NoError(t, err)
}

func TestResolveFailureIsLoadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Resolve(context.Background(), Ref{SessionID: "s-5"})

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "s-5", le.SessionID)
}

func TestAllSessionsPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logs/all-sessions", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		_, _ = w.Write([]byte(`{"page":2,"page_size":10,"total":25,
			"items":[{"session_id":"s-9","review_id":"r-9","path":"Nov 2025/12-11-2025/session.json"}]}`))
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL, time.Second).AllSessions(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.HasMore())
	assert.Equal(t, "12-11-2025", page.Items[0].DateLabel())
}

func TestMonthSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logs/sessions", r.URL.Path)
		assert.Equal(t, "Nov 2025", r.URL.Query().Get("month"))
		_, _ = w.Write([]byte(`{"page":3,"page_size":10,"total":30,"items":[]}`))
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL, time.Second).MonthSessions(context.Background(), "Nov 2025", 3, 10)
	require.NoError(t, err)
	assert.False(t, page.HasMore())
}

func TestGetTimeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"timeline":{"2025":["Dec","Nov"],"2024":["Dec"]}}`))
	}))
	defer srv.Close()

	tl, err := NewClient(srv.URL, time.Second).GetTimeline(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dec", "Nov"}, tl["2025"])
}

func TestDateFromPath(t *testing.T) {
	assert.Equal(t, "12-12-2025", DateFromPath("Dec 2025/12-12-2025/session.json"))
	assert.Equal(t, "", DateFromPath("Dec 2025/notadate/session.json"))
	assert.Equal(t, "", DateFromPath(""))
}

func TestItemDateLabelFallbacks(t *testing.T) {
	assert.Equal(t, "05-11-2025", Item{Date: "05-11-2025"}.DateLabel())
	assert.Equal(t, "12-12-2025", Item{Path: "Dec 2025/12-12-2025/x.json"}.DateLabel())
	assert.Equal(t, "14-11-2025", Item{Timestamp: "2025-11-14T10:30:00Z"}.DateLabel())
	assert.Equal(t, "—", Item{}.DateLabel())
}

func TestItemRefSplitsMonthYear(t *testing.T) {
	ref := Item{SessionID: "s-1", MonthYear: "Nov 2025", Date: "14-11-2025"}.Ref()
	assert.Equal(t, Ref{SessionID: "s-1", Date: "14-11-2025", Month: "Nov", Year: "2025"}, ref)
}

func TestMonthLabelsIntersection(t *testing.T) {
	now := time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC)
	tl := Timeline{"2025": {"Dec", "Oct"}, "2024": {"Dec"}}

	labels := MonthLabels(tl, now, 12)
	assert.Equal(t, []string{"Dec 2025", "Oct 2025"}, labels)
}

func TestMonthLabelsFallbackToLastN(t *testing.T) {
	now := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	labels := MonthLabels(Timeline{}, now, 3)
	assert.Equal(t, []string{"Mar 2025", "Feb 2025", "Jan 2025"}, labels)
}
