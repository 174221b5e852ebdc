package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// Logger wraps slog.Logger to implement the tracker.Logger interface
type Logger struct {
	slogger *slog.Logger
	attrs   []slog.Attr
}

// NewLogger creates a new structured logger backed by log/slog. Unknown
// levels and formats fall back to info/json.
func NewLogger(config tracker.LoggingConfig) tracker.Logger {
	opts := &slog.HandlerOptions{
		Level: slogLevel(tracker.ParseLogLevel(config.Level)),
	}

	var handler slog.Handler
	switch strings.ToLower(config.Format) {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		slogger: slog.New(handler),
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.log(slog.LevelDebug, msg, keysAndValues...)
}

// Info logs an info message
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.log(slog.LevelInfo, msg, keysAndValues...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.log(slog.LevelWarn, msg, keysAndValues...)
}

// Error logs an error message
func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.log(slog.LevelError, msg, keysAndValues...)
}

// With returns a new logger carrying additional fields
func (l *Logger) With(keysAndValues ...any) tracker.Logger {
	newAttrs := make([]slog.Attr, len(l.attrs), len(l.attrs)+len(keysAndValues)/2)
	copy(newAttrs, l.attrs)
	newAttrs = append(newAttrs, parseKeyValues(keysAndValues...)...)

	return &Logger{
		slogger: l.slogger,
		attrs:   newAttrs,
	}
}

func (l *Logger) log(level slog.Level, msg string, keysAndValues ...any) {
	attrs := parseKeyValues(keysAndValues...)
	l.slogger.LogAttrs(context.TODO(), level, msg, append(l.attrs, attrs...)...)
}

// parseKeyValues converts key-value pairs to slog attributes, dropping a
// trailing unpaired value and non-string keys
func parseKeyValues(keysAndValues ...any) []slog.Attr {
	var attrs []slog.Attr

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, slog.Any(key, keysAndValues[i+1]))
	}

	return attrs
}

func slogLevel(level tracker.LogLevel) slog.Level {
	switch level {
	case tracker.LogLevelDebug:
		return slog.LevelDebug
	case tracker.LogLevelWarn:
		return slog.LevelWarn
	case tracker.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
