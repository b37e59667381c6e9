package domain

import (
	"context"
	"time"
)

// ContentItem is the normalized record produced at the source boundary.
// Source-specific field names never leak past the normalization step;
// downstream code only ever sees this shape. Items are immutable once
// constructed.
type ContentItem struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	SourceLabel string    `json:"source_label"`
	PublishedAt time.Time `json:"published_at,omitzero"`
}

// ClassifiedItem is a ContentItem plus its sentiment tag and raw polarity
// score. It is derived deterministically from the item text and never
// stored independently of the item.
type ClassifiedItem struct {
	ContentItem
	Sentiment Sentiment `json:"sentiment"`
	Score     int       `json:"score"`
}

// KeywordCount is one entry of a ranked word-frequency result.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ExportRow is the flat shape handed to table and CSV writers.
type ExportRow struct {
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	Sentiment   Sentiment `json:"sentiment"`
	PublishedAt time.Time `json:"published_at,omitzero"`
}

// CooldownStatus is the externally visible cooldown state of one source.
type CooldownStatus struct {
	Blocked          bool `json:"blocked"`
	SecondsRemaining int  `json:"seconds_remaining"`
}

// Fetcher retrieves up to count items matching keyword from one external
// source and normalizes them into ContentItems. A rate-limited response
// is reported as *RateLimitError carrying the server-supplied wait time
// when the server provided one.
type Fetcher interface {
	Fetch(ctx context.Context, keyword string, count int) ([]ContentItem, error)
}
