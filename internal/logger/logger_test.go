package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	log := Default()
	require.NotNil(t, log)

	require.NotPanics(t, func() {
		log.Debug("debug message")
		log.Info("test message")
	})
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	log := Text(&buf, slog.LevelInfo)
	log.Info("region opened", "region", "r.0.0.mca")

	require.Contains(t, buf.String(), "region opened")
	require.Contains(t, buf.String(), "region=r.0.0.mca")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("hello", "key", "value")

	output := buf.String()
	require.Contains(t, output, "hello")
	require.Contains(t, output, `"key":"value"`)
	require.Contains(t, output, `"level":"INFO"`)
}

func TestJSONLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("should not appear")
	log.Debug("also should not appear")
	require.Zero(t, buf.Len())

	log.Warn("should appear")
	require.Contains(t, buf.String(), "should appear")
}

func TestPretty(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelDebug)
	log.With("region", "r.-1.-1.mca").WithGroup("chunk").Warn("coordinate mismatch", "x", 3, "note", "two words")

	output := buf.String()
	require.Contains(t, output, "WARN  coordinate mismatch")
	require.Contains(t, output, "region=r.-1.-1.mca")
	require.Contains(t, output, "chunk.x=3")
	require.Contains(t, output, `chunk.note="two words"`)
}

func TestPrettyLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelError)
	log.Warn("hidden")
	require.Zero(t, buf.Len())

	log.Error("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNop(t *testing.T) {
	log := Nop()
	require.NotPanics(t, func() {
		log.With("a", 1).WithGroup("g").Error("discarded")
	})
}

func TestNewWithFormat(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range []string{"", "text", "json", "pretty", "JSON"} {
		log, err := NewWithFormat(&buf, format, slog.LevelInfo)
		require.NoError(t, err)
		require.NotNil(t, log)
	}

	_, err := NewWithFormat(&buf, "xml", slog.LevelInfo)
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.expected, ParseLevel(tt.in))
		})
	}
}
