package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSource marks a source string outside the configured set.
	ErrUnknownSource = errors.New("unknown source")
	// ErrEmptyKeyword marks a search request without a usable keyword.
	ErrEmptyKeyword = errors.New("keyword must not be empty")
	// ErrFetchInFlight marks a search rejected because another fetch for
	// the same source has not resolved yet.
	ErrFetchInFlight = errors.New("fetch already in flight for source")
	// ErrFetchFailed marks a transport failure that is neither a rate
	// limit nor a success. Cooldown state is untouched by it.
	ErrFetchFailed = errors.New("fetch failed")
)

// RateLimitError reports that a fetch was refused, either locally by the
// cooldown gate or remotely by the source. SecondsRemaining is the wait
// the caller must observe before retrying; zero means the server signaled
// a rate limit without an explicit wait time.
type RateLimitError struct {
	SecondsRemaining int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry in %ds", e.SecondsRemaining)
}
