package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	assert.NotPanics(t, func() {
		l.Debug("msg", "key", "value")
		l.Info("msg")
		l.Warn("msg")
		l.Error("msg")
	})
	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlogAdapter(slog.New(handler))

	logger.Debug("debug message", "schema", "Pet")
	logger.With("phase", "parse").Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.Contains(t, out, "debug message")
	assert.Contains(t, out, "schema=Pet")
	assert.Contains(t, out, "phase=parse")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}

func TestNewSlogAdapterNil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	require.NotNil(t, adapter)
	assert.NotPanics(t, func() { adapter.Debug("nothing") })
}

func TestParserLogsWithLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	_, err := ParseWithOptions(
		WithBytes([]byte(petstoreYAML)),
		WithLogger(NewSlogAdapter(slog.New(handler))),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "parsed document")
	assert.Contains(t, buf.String(), "schemas=3")
}
