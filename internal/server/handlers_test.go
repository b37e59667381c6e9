package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmdoo7123/marketpulse/internal/app"
	"github.com/mmdoo7123/marketpulse/internal/config"
	"github.com/mmdoo7123/marketpulse/internal/cooldown"
	"github.com/mmdoo7123/marketpulse/internal/domain"
	"github.com/mmdoo7123/marketpulse/internal/sentiment"
)

type stubFetcher struct {
	items []domain.ContentItem
	err   error
}

func (f *stubFetcher) Fetch(_ context.Context, _ string, _ int) ([]domain.ContentItem, error) {
	return f.items, f.err
}

func newTestServer(posts domain.Fetcher) *Server {
	controller := cooldown.NewController(map[domain.Source]int{
		domain.SourcePosts: 900,
		domain.SourceNews:  60,
	})
	fetchers := map[domain.Source]domain.Fetcher{
		domain.SourcePosts: posts,
		domain.SourceNews:  &stubFetcher{},
	}
	appSvc := app.NewService(fetchers, controller, sentiment.NewClassifier(sentiment.Score), 50)
	cfg := &config.Config{Port: "0"}
	return NewServer(cfg, appSvc)
}

func doRequest(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleSearch_Success(t *testing.T) {
	srv := newTestServer(&stubFetcher{items: []domain.ContentItem{
		{ID: "1", Text: "great product"},
		{ID: "2", Text: "terrible service"},
	}})

	rec := doRequest(srv, http.MethodPost, "/api/search", `{"source":"posts","keyword":"product","count":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items  []domain.ClassifiedItem `json:"items"`
		Counts domain.SentimentCounts  `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, domain.SentimentCounts{Positive: 1, Negative: 1}, resp.Counts)
}

func TestHandleSearch_RateLimitedMapsTo429(t *testing.T) {
	srv := newTestServer(&stubFetcher{err: &domain.RateLimitError{SecondsRemaining: 120}})

	rec := doRequest(srv, http.MethodPost, "/api/search", `{"source":"posts","keyword":"product"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	ctx, ok := resp["context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(120), ctx["seconds_remaining"])

	// The cooldown endpoint reflects the block.
	rec = doRequest(srv, http.MethodGet, "/api/cooldown/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status domain.CooldownStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Blocked)
	assert.Equal(t, 120, status.SecondsRemaining)
}

func TestHandleSearch_UnknownSourceIs400(t *testing.T) {
	srv := newTestServer(&stubFetcher{})

	rec := doRequest(srv, http.MethodPost, "/api/search", `{"source":"rss","keyword":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearch_TransportFailureIs502(t *testing.T) {
	srv := newTestServer(&stubFetcher{err: errors.New("connection reset by peer")})

	rec := doRequest(srv, http.MethodPost, "/api/search", `{"source":"posts","keyword":"x"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleCooldown_UnblockedSource(t *testing.T) {
	srv := newTestServer(&stubFetcher{})

	rec := doRequest(srv, http.MethodGet, "/api/cooldown/news", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status domain.CooldownStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Blocked)
}

func TestHandleCooldown_UnknownSourceIs400(t *testing.T) {
	srv := newTestServer(&stubFetcher{})

	rec := doRequest(srv, http.MethodGet, "/api/cooldown/rss", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleKeywords_InvalidFilterIs400(t *testing.T) {
	srv := newTestServer(&stubFetcher{})

	rec := doRequest(srv, http.MethodGet, "/api/keywords?filter=angry", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/keywords?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleThemes_RequiresConcreteBucket(t *testing.T) {
	srv := newTestServer(&stubFetcher{})

	rec := doRequest(srv, http.MethodGet, "/api/themes?sentiment=all", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/themes?sentiment=negative", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleExport_WritesCSV(t *testing.T) {
	srv := newTestServer(&stubFetcher{items: []domain.ContentItem{
		{ID: "1", Text: "great product", Author: "ada"},
	}})

	rec := doRequest(srv, http.MethodPost, "/api/search", `{"source":"posts","keyword":"product"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "author,text,sentiment,published_at", lines[0])
	assert.Equal(t, "ada,great product,positive,", lines[1])
}

func TestHandleResultsAndSentiment_EmptySession(t *testing.T) {
	srv := newTestServer(&stubFetcher{})

	rec := doRequest(srv, http.MethodGet, "/api/results", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/sentiment", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var counts domain.SentimentCounts
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	assert.Equal(t, 0, counts.Total())
}

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(&stubFetcher{})

	rec := doRequest(srv, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

