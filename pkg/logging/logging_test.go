package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		// Lowercase
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},

		// Uppercase
		{"DEBUG", LevelDebug},
		{"INFO", LevelInfo},
		{"WARN", LevelWarn},
		{"WARNING", LevelWarn},
		{"ERROR", LevelError},

		// Mixed case
		{"Debug", LevelDebug},
		{"Info", LevelInfo},
		{"Warn", LevelWarn},
		{"Warning", LevelWarn},
		{"Error", LevelError},
		{"dEbUg", LevelDebug},

		// Empty string defaults to Info
		{"", LevelInfo},

		// Unrecognized defaults to Info
		{"trace", LevelInfo},
		{"fatal", LevelInfo},
		{"unknown", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"Json", FormatJSON},
		{"text", FormatText},
		{"TEXT", FormatText},
		{"", FormatText},
		{"yaml", FormatText}, // unrecognized defaults to text
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseFormat(tt.input)
			if result != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("writes text to output", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Config{Level: LevelInfo, Format: FormatText, Output: &buf})

		log.Debug("hidden")
		log.Info("request handled", "status", 200)

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "msg=\"request handled\"")
		assert.Contains(t, out, "status=200")
	})

	t.Run("writes json to output", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf})

		log.Debug("accepted", "worker", 3)

		assert.Contains(t, buf.String(), `"msg":"accepted"`)
		assert.Contains(t, buf.String(), `"worker":3`)
	})

	t.Run("writes to rotating file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "server.log")
		var buf bytes.Buffer
		log := New(Config{
			Level:  LevelInfo,
			Format: FormatText,
			Output: &buf,
			File:   FileConfig{Path: path, MaxSizeMB: 1},
		})

		log.Info("to the file")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to the file")
		assert.Empty(t, buf.String(), "output is ignored when a file is configured")
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, LevelInfo, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Empty(t, cfg.File.Path)
	assert.Equal(t, 100, cfg.File.MaxSizeMB)
}

func TestNop(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)
	log.Error("discarded")
	assert.False(t, log.Enabled(context.Background(), LevelDebug))
}

func TestMultiHandler(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: LevelDebug}),
		slog.NewTextHandler(&errorBuf, &slog.HandlerOptions{Level: LevelError}),
	)
	log := slog.New(h).With("component", "engine")

	log.Debug("details")
	log.Error("failure")

	assert.Equal(t, 2, strings.Count(debugBuf.String(), "component=engine"))
	assert.NotContains(t, errorBuf.String(), "details")
	assert.Contains(t, errorBuf.String(), "failure")
	assert.True(t, h.Enabled(context.Background(), LevelDebug))
}
