package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("storefront", "info", &buf)

	l.Info("hello", slog.String("key", "value"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "storefront", entry["service"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("storefront", "warn", &buf)

	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, CorrelationIDFromContext(ctx))

	ctx = WithCorrelationID(ctx, "corr-123")
	assert.Equal(t, "corr-123", CorrelationIDFromContext(ctx))
}

func TestSessionID_RoundTrip(t *testing.T) {
	ctx := WithSessionID(context.Background(), "sess-9")
	assert.Equal(t, "sess-9", SessionIDFromContext(ctx))
}

func TestWithContext_EnrichesFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("storefront", "info", &buf)

	ctx := WithCorrelationID(context.Background(), "corr-1")
	ctx = WithSessionID(ctx, "sess-1")

	WithContext(ctx, base).Info("enriched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "corr-1", entry["correlation_id"])
	assert.Equal(t, "sess-1", entry["session_id"])
}

func TestFromContext_Fallback(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	l := NewWithWriter("storefront", "info", &bytes.Buffer{})
	ctx := NewContext(context.Background(), l)
	assert.Equal(t, l, FromContext(ctx))
}
