package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// InitLogger initializes the global logger with configuration from environment variables
func InitLogger() {
	Configure(os.Stderr, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// Configure replaces the global logger with one writing to w at the given level.
func Configure(w io.Writer, level LogLevel) {
	Logger = log.New(w)
	setLogLevel(Logger, level)

	Logger.SetReportTimestamp(true)
	Logger.SetReportCaller(true)
	Logger.SetPrefix("tileworld")

	Logger.Debug("Logger initialized successfully", "level", level)
}

// ParseLevel maps a textual level to a LogLevel, defaulting to info.
func ParseLevel(raw string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func setLogLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case DebugLevel:
		logger.SetLevel(log.DebugLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *log.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithComponent tags log lines with the emitting component.
func WithComponent(name string) *log.Logger {
	return WithFields("component", name)
}

// WithCoords creates a logger with tile coordinate context
func WithCoords(x, y int) *log.Logger {
	return WithFields("x", x, "y", y)
}

// WithChunkCoords creates a logger with chunk origin context
func WithChunkCoords(chunkX, chunkY int) *log.Logger {
	return WithFields("chunk_x", chunkX, "chunk_y", chunkY)
}

// WithDuration creates a logger with duration context (for performance logging)
func WithDuration(operation string, duration interface{}) *log.Logger {
	return WithFields("operation", operation, "duration", duration)
}
