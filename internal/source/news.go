package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmdoo7123/marketpulse/internal/domain"
	"github.com/mmdoo7123/marketpulse/internal/platform/retry"
)

// NewsClient fetches from the news-search API.
type NewsClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	policy  retry.Policy
}

// NewNewsClient creates a client for the news API.
func NewNewsClient(baseURL, apiKey string, timeout time.Duration) *NewsClient {
	return &NewsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		policy:  defaultPolicy(),
	}
}

// newsResponse is the raw payload shape of the news API. An article's
// title becomes the item text, its summary the description, and its
// outlet the source label.
type newsResponse struct {
	Articles []rawArticle `json:"articles"`
}

type rawArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// Fetch retrieves up to count articles matching keyword and normalizes
// them. Articles without a title are dropped: item text is required.
func (c *NewsClient) Fetch(ctx context.Context, keyword string, count int) ([]domain.ContentItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building news request: %w", err)
	}
	q := url.Values{}
	q.Set("q", keyword)
	q.Set("pageSize", strconv.Itoa(count))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-Api-Key", c.apiKey)

	body, err := fetchBody(ctx, c.http, c.policy, req)
	if err != nil {
		return nil, err
	}

	var payload newsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding news response: %w", err)
	}

	items := make([]domain.ContentItem, 0, len(payload.Articles))
	for _, article := range payload.Articles {
		if article.Title == "" {
			continue
		}
		label := article.Source.Name
		if label == "" {
			label = "news"
		}
		items = append(items, domain.ContentItem{
			ID:          orGeneratedID(article.URL),
			Text:        article.Title,
			Description: article.Description,
			Author:      article.Author,
			SourceLabel: label,
			PublishedAt: parseTimestamp(article.PublishedAt),
		})
	}
	return items, nil
}
