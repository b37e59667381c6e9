package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mmdoo7123/marketpulse/internal/domain"
	"github.com/mmdoo7123/marketpulse/internal/platform/retry"
)

// postsSourceLabel is the provenance tag on every normalized post item.
const postsSourceLabel = "social"

// PostsClient fetches from the social-post search API.
type PostsClient struct {
	baseURL string
	token   string
	http    *http.Client
	policy  retry.Policy
}

// NewPostsClient creates a client for the posts API. baseURL points at
// the search endpoint, token is the bearer token.
func NewPostsClient(baseURL, token string, timeout time.Duration) *PostsClient {
	return &PostsClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		policy:  defaultPolicy(),
	}
}

// postsResponse is the raw payload shape of the posts API.
type postsResponse struct {
	Data []rawPost `json:"data"`
}

type rawPost struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// Fetch retrieves up to count posts matching keyword and normalizes them.
func (c *PostsClient) Fetch(ctx context.Context, keyword string, count int) ([]domain.ContentItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building posts request: %w", err)
	}
	q := url.Values{}
	q.Set("query", keyword)
	q.Set("max_results", strconv.Itoa(count))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.token)

	body, err := fetchBody(ctx, c.http, c.policy, req)
	if err != nil {
		return nil, err
	}

	var payload postsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding posts response: %w", err)
	}

	items := make([]domain.ContentItem, 0, len(payload.Data))
	for _, post := range payload.Data {
		if post.Text == "" {
			continue
		}
		items = append(items, domain.ContentItem{
			ID:          orGeneratedID(post.ID),
			Text:        post.Text,
			Author:      post.Username,
			SourceLabel: postsSourceLabel,
			PublishedAt: parseTimestamp(post.CreatedAt),
		})
	}
	return items, nil
}

// orGeneratedID falls back to a random ID when the source omits one, so
// every normalized item stays uniquely addressable.
func orGeneratedID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// parseTimestamp returns the zero time for absent or malformed
// timestamps; PublishedAt is optional on ContentItem.
func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}
