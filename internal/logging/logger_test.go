package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	} {
		assert.Equal(t, tc.want, parseLevel(tc.in), tc.in)
	}
}

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Info("hello", "path", "a.b")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"path":"a.b"`)

	buf.Reset()
	New(&buf, "info", "text").Info("hello", "path", "a.b")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "path=a.b")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "text")
	logger.Info("dropped")
	logger.Debug("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestSetup_InstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := Setup(&buf, "debug", "text")
	assert.Same(t, logger, slog.Default())

	slog.Debug("through default")
	assert.Contains(t, buf.String(), "through default")
}
