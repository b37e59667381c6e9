package domain

// Sentiment is the bucket assigned to an item by polarity scoring.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"

	// SentimentAll is only valid as a filter value, never as a
	// classification result.
	SentimentAll Sentiment = "all"
)

// ValidFilter reports whether s can be used to filter classified items.
func (s Sentiment) ValidFilter() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral, SentimentAll:
		return true
	}
	return false
}

// ValidBucket reports whether s is a concrete classification bucket.
func (s Sentiment) ValidBucket() bool {
	return s.ValidFilter() && s != SentimentAll
}

// SentimentForScore maps a polarity score to its bucket: positive scores
// are positive sentiment, negative scores negative, zero neutral.
func SentimentForScore(score int) Sentiment {
	switch {
	case score > 0:
		return SentimentPositive
	case score < 0:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ScoreFunc is the pluggable polarity scorer. Implementations must be
// deterministic and side-effect free: the same text always yields the
// same score.
type ScoreFunc func(text string) int

// SentimentCounts holds the number of classified items per bucket.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the number of items across all buckets.
func (c SentimentCounts) Total() int {
	return c.Positive + c.Negative + c.Neutral
}
