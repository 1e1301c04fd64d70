package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxAddsRequestID(t *testing.T) {
	_, err := Init(Options{Level: "debug", Format: "json"})
	require.NoError(t, err)

	var buf bytes.Buffer
	SetOutput(&buf)

	ctx := WithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Str("k", "v").Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "v", entry["k"])
	assert.NotContains(t, entry, "trace_id")
}

func TestInitLevel(t *testing.T) {
	_, err := Init(Options{Level: "warn"})
	require.NoError(t, err)

	var buf bytes.Buffer
	SetOutput(&buf)

	L().Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	L().Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")

	assert.Equal(t, "", RequestID(context.Background()))
}
