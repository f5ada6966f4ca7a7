package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

type attrsKey struct{}

// Init configures the global logger. Level names are case-insensitive,
// unknown levels fall back to info. Any format other than "json" selects
// the text handler.
func Init(level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the default logger, initializing it lazily so commands that
// skip Init still log somewhere.
func Get() *slog.Logger {
	if defaultLogger == nil {
		Init("INFO", "json")
	}
	return defaultLogger
}

// ContextWithAttrs stores log attributes on the context. Attributes
// accumulate across calls; WithContext replays them.
func ContextWithAttrs(ctx context.Context, args ...any) context.Context {
	if existing, ok := ctx.Value(attrsKey{}).([]any); ok {
		args = append(existing[:len(existing):len(existing)], args...)
	}
	return context.WithValue(ctx, attrsKey{}, args)
}

// WithContext returns a logger carrying the attributes stored on the
// context, typically the authenticated user id set by the auth middleware.
func WithContext(ctx context.Context) *slog.Logger {
	logger := Get()
	if args, ok := ctx.Value(attrsKey{}).([]any); ok {
		logger = logger.With(args...)
	}
	return logger
}

// Fatal logs an error message and exits, since slog has no fatal level
func Fatal(msg string, args ...any) {
	Get().Error(msg, args...)
	os.Exit(1)
}
