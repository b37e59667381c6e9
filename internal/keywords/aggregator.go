// Package keywords computes ranked word-frequency statistics over
// classified items. Results are recomputed on demand from the canonical
// item slice; nothing here holds state.
package keywords

import (
	"sort"
	"strings"
	"unicode"

	"github.com/mmdoo7123/marketpulse/internal/domain"
)

// Default limits for the two aggregation views.
const (
	GeneralLimit = 10
	ThemeLimit   = 5
)

// stopwords is a closed, language-neutral list of tokens that never
// appear in results.
var stopwords = map[string]struct{}{
	"the": {}, "is": {}, "and": {}, "of": {}, "to": {}, "in": {},
	"on": {}, "for": {}, "with": {}, "at": {}, "by": {}, "a": {},
	"an": {}, "it": {}, "this": {}, "that": {},
}

// TopRelated returns the most frequent tokens related to query across the
// sentiment-filtered item set. A token is related when it contains the
// lower-cased query or is contained by it, which biases the general
// "frequent keywords" view toward query vocabulary.
func TopRelated(items []domain.ClassifiedItem, filter domain.Sentiment, query string, limit int) []domain.KeywordCount {
	q := strings.ToLower(strings.TrimSpace(query))
	gate := func(token string) bool {
		if q == "" {
			return true
		}
		return strings.Contains(token, q) || strings.Contains(q, token)
	}
	return top(items, filter, gate, limit)
}

// TopThemes returns the most frequent tokens within one sentiment bucket
// with no query gate. Presented as themes, issues, or opportunities
// depending on the bucket.
func TopThemes(items []domain.ClassifiedItem, bucket domain.Sentiment, limit int) []domain.KeywordCount {
	return top(items, bucket, nil, limit)
}

// top counts qualifying tokens across the filtered items and returns them
// sorted by count descending, ties broken by first-encountered order.
// An item set with no qualifying tokens yields an empty (non-nil) slice;
// presentation decides what to show for it.
func top(items []domain.ClassifiedItem, filter domain.Sentiment, gate func(string) bool, limit int) []domain.KeywordCount {
	counts := make(map[string]int)
	var order []string

	for _, item := range items {
		if filter != domain.SentimentAll && item.Sentiment != filter {
			continue
		}
		for _, token := range Tokenize(item.Text) {
			if gate != nil && !gate(token) {
				continue
			}
			if _, seen := counts[token]; !seen {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	ranked := make([]domain.KeywordCount, 0, len(order))
	for _, word := range order {
		ranked = append(ranked, domain.KeywordCount{Word: word, Count: counts[word]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Tokenize lower-cases text, splits it on runs of non-word characters,
// and drops empty tokens and stopwords.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
