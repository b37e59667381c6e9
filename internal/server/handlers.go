package server

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mmdoo7123/marketpulse/internal/domain"
	apperrors "github.com/mmdoo7123/marketpulse/internal/errors"
)

type searchRequest struct {
	Source  string `json:"source"`
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

type searchResponse struct {
	Items  []domain.ClassifiedItem `json:"items"`
	Counts domain.SentimentCounts  `json:"counts"`
}

func (s *Server) handleSearch(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	src, err := domain.ParseSource(req.Source)
	if err != nil {
		return apperrors.ValidationError("source must be one of: posts, news")
	}

	items, err := s.app.Search(c.Request().Context(), src, req.Keyword, req.Count)
	if err != nil {
		return mapSearchError(err)
	}

	return c.JSON(http.StatusOK, searchResponse{
		Items:  items,
		Counts: s.app.SentimentCounts(),
	})
}

// mapSearchError translates the domain error taxonomy into structured
// HTTP errors: cooldown and server rate limits become 429 with the wait
// surfaced, an outstanding fetch 409, transport failures 502.
func mapSearchError(err error) error {
	var rateLimited *domain.RateLimitError
	switch {
	case errors.As(err, &rateLimited):
		return apperrors.RateLimitedError(rateLimited.SecondsRemaining)
	case errors.Is(err, domain.ErrFetchInFlight):
		return apperrors.ConflictError("a fetch for this source is already in flight")
	case errors.Is(err, domain.ErrEmptyKeyword), errors.Is(err, domain.ErrUnknownSource):
		return apperrors.ValidationError(err.Error())
	case errors.Is(err, domain.ErrFetchFailed):
		return apperrors.ExternalError("source fetch failed, try again later", err)
	default:
		return err
	}
}

func (s *Server) handleResults(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"items": s.app.Items()})
}

func (s *Server) handleSentiment(c echo.Context) error {
	return c.JSON(http.StatusOK, s.app.SentimentCounts())
}

func (s *Server) handleKeywords(c echo.Context) error {
	filter := domain.Sentiment(c.QueryParam("filter"))
	if filter == "" {
		filter = domain.SentimentAll
	}
	if !filter.ValidFilter() {
		return apperrors.ValidationError("filter must be one of: positive, negative, neutral, all")
	}

	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"keywords": s.app.TopKeywords(filter, limit),
	})
}

func (s *Server) handleThemes(c echo.Context) error {
	bucket := domain.Sentiment(c.QueryParam("sentiment"))
	if !bucket.ValidBucket() {
		return apperrors.ValidationError("sentiment must be one of: positive, negative, neutral")
	}

	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"themes": s.app.Themes(bucket, limit),
	})
}

func (s *Server) handleCooldown(c echo.Context) error {
	src, err := domain.ParseSource(c.Param("source"))
	if err != nil {
		return apperrors.ValidationError("source must be one of: posts, news")
	}
	return c.JSON(http.StatusOK, s.app.Cooldown(src))
}

func (s *Server) handleExport(c echo.Context) error {
	rows := s.app.ExportRows()

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="results.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"author", "text", "sentiment", "published_at"}); err != nil {
		return err
	}
	for _, row := range rows {
		published := ""
		if !row.PublishedAt.IsZero() {
			published = row.PublishedAt.Format(time.RFC3339)
		}
		if err := w.Write([]string{row.Author, row.Text, string(row.Sentiment), published}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, apperrors.ValidationError("limit must be a positive integer")
	}
	return limit, nil
}
