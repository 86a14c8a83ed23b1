// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() to configure the default logger plus credential redaction.

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init configures the default slog logger based on environment variables.
// LOG_LEVEL: debug, info, warn, error (default: info)
// LOG_FORMAT: text, json (default: text)
func Init() {
	slog.SetDefault(New(os.Stderr))
}

// New builds a logger writing to w with env-driven level and format and the
// credential redaction rule applied.
func New(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(os.Getenv("LOG_LEVEL")),
		ReplaceAttr: redactCredentials,
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything, for production CLI paths
// where diagnostic logging is not requested.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// redactCredentials blanks attribute values whose keys look like secrets.
func redactCredentials(groups []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	if key == "password" || key == "token" || key == "access_token" ||
		strings.HasSuffix(key, "_password") || strings.HasSuffix(key, "_secret") {
		a.Value = slog.StringValue("[REDACTED]")
	}
	return a
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
