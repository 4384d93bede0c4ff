package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMavenHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewMavenHandler(&buf, nil))

	logger.Info("run finished", "matches", 3, "user_id", "alice")

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "run finished")
	assert.Contains(t, out, "matches=3")
	assert.Contains(t, out, "user_id=alice")
}

func TestMavenHandler_SystemBracket(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewMavenHandler(&buf, nil)).With("system", "reconcile")

	logger.Warn("pool exhausted")

	out := buf.String()
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "[reconcile]")
	// The system attr is rendered as a bracket, not a key=value pair
	assert.NotContains(t, out, "system=")
}

func TestMavenHandler_QuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewMavenHandler(&buf, nil))

	logger.Info("commit failed", "vendor", "Whole Foods")

	assert.Contains(t, buf.String(), `vendor="Whole Foods"`)
}

func TestMavenHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	handler := NewMavenHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

	require.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, handler.Enabled(context.Background(), slog.LevelError))

	logger := slog.New(handler)
	logger.Info("hidden")
	logger.Error("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}
