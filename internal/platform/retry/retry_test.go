package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryAll(error) Action { return Retry }

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	val, err := Do(context.Background(), Policy{MaxAttempts: 3, InitialBackoff: time.Millisecond}, retryAll, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 3, attempts)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 2, InitialBackoff: time.Millisecond}, retryAll, func() (int, error) {
		attempts++
		return 0, errors.New("still broken")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
	assert.Equal(t, 2, attempts)
}

func TestDo_StopIsPermanent(t *testing.T) {
	cause := errors.New("not found")
	attempts := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 5, InitialBackoff: time.Millisecond}, func(error) Action { return Stop }, func() (int, error) {
		attempts++
		return 0, cause
	})

	var permanent *PermanentError
	require.ErrorAs(t, err, &permanent)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts)
}

func TestDo_ContextCancellationAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do(ctx, Policy{MaxAttempts: 3, InitialBackoff: time.Minute}, retryAll, func() (int, error) {
		return 0, errors.New("transient")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_OnRetryCallbackSeesAttempts(t *testing.T) {
	var seen []int
	p := Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		OnRetry:        func(attempt int, _ error, _ time.Duration) { seen = append(seen, attempt) },
	}

	_, _ = Do(context.Background(), p, retryAll, func() (int, error) {
		return 0, errors.New("transient")
	})

	assert.Equal(t, []int{1, 2}, seen)
}
