package sentiment

import (
	"github.com/mmdoo7123/marketpulse/internal/domain"
	"github.com/mmdoo7123/marketpulse/internal/metrics"
)

// Classifier tags item text with a sentiment bucket derived from a
// polarity score.
type Classifier struct {
	score domain.ScoreFunc
}

// NewClassifier creates a classifier backed by the given scorer. A nil
// scorer falls back to the built-in lexicon.
func NewClassifier(score domain.ScoreFunc) *Classifier {
	if score == nil {
		score = Score
	}
	return &Classifier{score: score}
}

// Classify scores text and maps the score to a bucket: positive score to
// positive sentiment, negative to negative, zero to neutral. Empty text
// is neutral with score zero.
func (c *Classifier) Classify(text string) (domain.Sentiment, int) {
	if text == "" {
		return domain.SentimentNeutral, 0
	}
	score := c.score(text)
	return domain.SentimentForScore(score), score
}

// ClassifyAll tags every item, preserving order.
func (c *Classifier) ClassifyAll(items []domain.ContentItem) []domain.ClassifiedItem {
	classified := make([]domain.ClassifiedItem, 0, len(items))
	for _, item := range items {
		bucket, score := c.Classify(item.Text)
		metrics.ItemsClassifiedTotal.WithLabelValues(string(bucket)).Inc()
		classified = append(classified, domain.ClassifiedItem{
			ContentItem: item,
			Sentiment:   bucket,
			Score:       score,
		})
	}
	return classified
}
