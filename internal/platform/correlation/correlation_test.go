package correlation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_UniqueAndWellFormed(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}

func TestWithID_RoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "abc123")

	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc123", id)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}

func TestHandler_InjectsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithID(context.Background(), "req42")
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), "correlation_id=req42")
}

func TestHandler_NoIDNoAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewTextHandler(&buf, nil)))

	logger.InfoContext(context.Background(), "hello")

	assert.NotContains(t, buf.String(), "correlation_id")
}
