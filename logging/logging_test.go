package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	expectedValues := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, level := range expectedValues {
		actual, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, level, actual, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetup_Console(t *testing.T) {
	buffer := bytes.Buffer{}
	logger, closeFn, err := Setup(Options{Level: "warn", Output: &buffer})
	require.NoError(t, err)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", "table", "gun_info")

	output := buffer.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "msg=shown")
	assert.Contains(t, output, "table=gun_info")
	assert.Contains(t, output, RunIDKey+"=")
}

func TestSetup_RunIDIsUUID(t *testing.T) {
	buffer := bytes.Buffer{}
	logger, _, err := Setup(Options{Output: &buffer})
	require.NoError(t, err)
	logger.Info("y")

	runID := ""
	for _, field := range bytes.Fields(buffer.Bytes()) {
		if bytes.HasPrefix(field, []byte(RunIDKey+"=")) {
			runID = string(bytes.TrimPrefix(field, []byte(RunIDKey+"=")))
		}
	}
	_, err = uuid.Parse(runID)
	assert.NoError(t, err)

	_, _, err = Setup(Options{Level: "nope", Output: &buffer})
	assert.Error(t, err)
}

func TestMultiHandler(t *testing.T) {
	debug := bytes.Buffer{}
	errorOnly := bytes.Buffer{}
	multi := &multiHandler{
		handlers: []slog.Handler{
			slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
			slog.NewTextHandler(&errorOnly, &slog.HandlerOptions{Level: slog.LevelError}),
		},
	}
	assert.True(t, multi.Enabled(context.Background(), slog.LevelDebug))

	logger := slog.New(multi).With("region", "ch").WithGroup("table")
	logger.Debug("decoded", "name", "gun_info")
	logger.Error("failed", "name", "item_info")

	assert.Contains(t, debug.String(), "msg=decoded")
	assert.Contains(t, debug.String(), "table.name=gun_info")
	assert.Contains(t, debug.String(), "region=ch")
	assert.NotContains(t, errorOnly.String(), "decoded")
	assert.Contains(t, errorOnly.String(), "msg=failed")
}
