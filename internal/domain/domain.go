package domain

import "fmt"

// Source identifies one of the two configured external content providers.
// Each source has its own raw payload shape and its own externally imposed
// rate limit, so cooldown state is tracked per source.
type Source string

const (
	// SourcePosts is the social-post search API (primary source).
	SourcePosts Source = "posts"
	// SourceNews is the news-search API (secondary source).
	SourceNews Source = "news"
)

// Sources lists every configured source in a stable order.
var Sources = []Source{SourcePosts, SourceNews}

// Valid reports whether s is one of the configured sources.
func (s Source) Valid() bool {
	return s == SourcePosts || s == SourceNews
}

// ParseSource converts a user-supplied string into a Source.
func ParseSource(raw string) (Source, error) {
	s := Source(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, raw)
	}
	return s, nil
}
