package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmdoo7123/marketpulse/internal/cooldown"
	"github.com/mmdoo7123/marketpulse/internal/domain"
	"github.com/mmdoo7123/marketpulse/internal/keywords"
	"github.com/mmdoo7123/marketpulse/internal/metrics"
	"github.com/mmdoo7123/marketpulse/internal/sentiment"
)

// Service is the session controller. It owns the classified result set
// of the most recent successful search and gates fetches through the
// cooldown controller and a per-source in-flight flag. All derived views
// are recomputed from the canonical item slice on demand.
type Service struct {
	fetchers   map[domain.Source]domain.Fetcher
	cooldowns  *cooldown.Controller
	classifier *sentiment.Classifier
	maxResults int

	mu       sync.Mutex
	inflight map[domain.Source]bool
	items    []domain.ClassifiedItem
	keyword  string
}

// NewService creates the session controller. maxResults caps the
// per-search count requested from a source.
func NewService(fetchers map[domain.Source]domain.Fetcher, cooldowns *cooldown.Controller, classifier *sentiment.Classifier, maxResults int) *Service {
	return &Service{
		fetchers:   fetchers,
		cooldowns:  cooldowns,
		classifier: classifier,
		maxResults: maxResults,
		inflight:   make(map[domain.Source]bool),
	}
}

// Search fetches items matching keyword from src through the cooldown
// gate, classifies them, and replaces the session's result set.
//
// It always resolves to a terminal outcome: the classified items, a
// *domain.RateLimitError with the seconds left (either from the local
// gate, with no network call issued, or after the server reported a rate
// limit), domain.ErrFetchInFlight when a fetch for src is already
// outstanding, or a domain.ErrFetchFailed wrap for any other transport
// failure, which leaves cooldown state untouched.
func (s *Service) Search(ctx context.Context, src domain.Source, keyword string, count int) ([]domain.ClassifiedItem, error) {
	fetcher, ok := s.fetchers[src]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSource, src)
	}

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.ErrEmptyKeyword
	}
	if count < 1 || count > s.maxResults {
		count = s.maxResults
	}

	if !s.beginFetch(src) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFetchInFlight, src)
	}
	defer s.endFetch(src)

	if !s.cooldowns.CanFetch(src) {
		metrics.FetchesTotal.WithLabelValues(string(src), "rejected").Inc()
		return nil, &domain.RateLimitError{SecondsRemaining: s.cooldowns.SecondsRemaining(src)}
	}

	timer := prometheus.NewTimer(metrics.FetchDuration.WithLabelValues(string(src)))
	items, err := fetcher.Fetch(ctx, keyword, count)
	timer.ObserveDuration()

	var rateLimited *domain.RateLimitError
	switch {
	case errors.As(err, &rateLimited):
		s.cooldowns.OnRateLimited(src, rateLimited.SecondsRemaining)
		metrics.FetchesTotal.WithLabelValues(string(src), "rate_limited").Inc()
		slog.WarnContext(ctx, "Source rate limited", "source", src, "wait_seconds", s.cooldowns.SecondsRemaining(src))
		return nil, &domain.RateLimitError{SecondsRemaining: s.cooldowns.SecondsRemaining(src)}
	case err != nil:
		metrics.FetchesTotal.WithLabelValues(string(src), "failed").Inc()
		slog.ErrorContext(ctx, "Fetch failed", "source", src, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	s.cooldowns.OnFetchSuccess(src)
	metrics.FetchesTotal.WithLabelValues(string(src), "success").Inc()
	metrics.ItemsFetchedTotal.WithLabelValues(string(src)).Add(float64(len(items)))

	classified := s.classifier.ClassifyAll(items)

	s.mu.Lock()
	s.items = classified
	s.keyword = keyword
	s.mu.Unlock()

	slog.InfoContext(ctx, "Search completed", "source", src, "keyword", keyword, "items", len(classified))
	return classified, nil
}

// beginFetch marks src in flight, returning false when a fetch for it is
// already outstanding. This is the single-writer discipline: repeat
// submissions for a source are rejected until the pending one resolves.
func (s *Service) beginFetch(src domain.Source) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[src] {
		return false
	}
	s.inflight[src] = true
	return true
}

func (s *Service) endFetch(src domain.Source) {
	s.mu.Lock()
	delete(s.inflight, src)
	s.mu.Unlock()
}

// Items returns the classified items of the most recent search.
func (s *Service) Items() []domain.ClassifiedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.ClassifiedItem, len(s.items))
	copy(items, s.items)
	return items
}

// SentimentCounts tallies the current result set per bucket. The totals
// always sum to the number of items.
func (s *Service) SentimentCounts() domain.SentimentCounts {
	var counts domain.SentimentCounts
	for _, item := range s.Items() {
		switch item.Sentiment {
		case domain.SentimentPositive:
			counts.Positive++
		case domain.SentimentNegative:
			counts.Negative++
		default:
			counts.Neutral++
		}
	}
	return counts
}

// TopKeywords returns the query-biased frequent keywords of the current
// result set, optionally restricted to one sentiment bucket.
func (s *Service) TopKeywords(filter domain.Sentiment, limit int) []domain.KeywordCount {
	s.mu.Lock()
	items, query := s.items, s.keyword
	s.mu.Unlock()
	if limit < 1 {
		limit = keywords.GeneralLimit
	}
	return keywords.TopRelated(items, filter, query, limit)
}

// Themes returns the unrestricted top tokens within one sentiment
// bucket: themes for positive, issues for negative, opportunities for
// neutral.
func (s *Service) Themes(bucket domain.Sentiment, limit int) []domain.KeywordCount {
	s.mu.Lock()
	items := s.items
	s.mu.Unlock()
	if limit < 1 {
		limit = keywords.ThemeLimit
	}
	return keywords.TopThemes(items, bucket, limit)
}

// Cooldown returns the externally visible cooldown state of src.
func (s *Service) Cooldown(src domain.Source) domain.CooldownStatus {
	return s.cooldowns.Status(src)
}

// ExportRows flattens the current result set for table and CSV writers.
func (s *Service) ExportRows() []domain.ExportRow {
	items := s.Items()
	rows := make([]domain.ExportRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, domain.ExportRow{
			Author:      item.Author,
			Text:        item.Text,
			Sentiment:   item.Sentiment,
			PublishedAt: item.PublishedAt,
		})
	}
	return rows
}
