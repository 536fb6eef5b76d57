package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

// Init initializes the global logger based on environment
// Development: Text format with Debug level
// Production: JSON format with Info level
// Errors are additionally reported to Sentry when a DSN is configured.
func Init(isDev bool, sentryDSN string) {
	handlers := []slog.Handler{stdoutHandler(isDev)}

	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryDSN,
			Environment:      environment(isDev),
			TracesSampleRate: 0.2,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		} else {
			slog.New(handlers[0]).Warn("sentry disabled", "error", err)
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Flush waits for buffered Sentry events. Safe to call when Sentry is off.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

func stdoutHandler(isDev bool) slog.Handler {
	if isDev {
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
}

func environment(isDev bool) string {
	if isDev {
		return "development"
	}
	return "production"
}
