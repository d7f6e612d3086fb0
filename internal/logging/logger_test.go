package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Logger_InitLogger_LogLevelConfiguration(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel log.Level
	}{
		{name: "debug_level", logLevel: "debug", expectedLevel: log.DebugLevel},
		{name: "info_level", logLevel: "info", expectedLevel: log.InfoLevel},
		{name: "warn_level", logLevel: "warn", expectedLevel: log.WarnLevel},
		{name: "warning_level_alias", logLevel: "warning", expectedLevel: log.WarnLevel},
		{name: "error_level", logLevel: "error", expectedLevel: log.ErrorLevel},
		{name: "default_empty_level", logLevel: "", expectedLevel: log.InfoLevel},
		{name: "default_invalid_level", logLevel: "verbose", expectedLevel: log.InfoLevel},
		{name: "case_insensitive_debug", logLevel: "DEBUG", expectedLevel: log.DebugLevel},
		{name: "whitespace_trimmed", logLevel: "  warn  ", expectedLevel: log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			Logger = nil

			InitLogger()

			require.NotNil(t, Logger)
			assert.Equal(t, tt.expectedLevel, Logger.GetLevel())
		})
	}
}

func Test_Logger_GetLogger_Singleton(t *testing.T) {
	Logger = nil

	first := GetLogger()
	second := GetLogger()

	require.NotNil(t, first)
	assert.Same(t, first, second, "GetLogger should reuse the global instance")
}

func Test_Logger_WithChunkCoords_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, DebugLevel)
	defer func() { Logger = nil }()

	WithChunkCoords(32, 64).Info("chunk generated")

	out := buf.String()
	assert.Contains(t, out, "chunk generated")
	assert.Contains(t, out, "chunk_x=32")
	assert.Contains(t, out, "chunk_y=64")
}

func Test_Logger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, InfoLevel)
	defer func() { Logger = nil }()

	WithComponent("pathfinder").Debug("hidden at info level")
	WithComponent("pathfinder").Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden at info level")
	assert.Contains(t, out, "component=pathfinder")
}
