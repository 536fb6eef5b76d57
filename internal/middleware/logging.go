package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/templui/vidshare/internal/metrics"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Paths to skip logging (health checks and scrapes)
var skipLoggingPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// RouteMatcher resolves the registered pattern for a request. *http.ServeMux
// satisfies it.
type RouteMatcher interface {
	Handler(r *http.Request) (h http.Handler, pattern string)
}

// RequestLogging logs HTTP requests with method, path, status, and duration
// and records them in the request metrics, labelled by route pattern. Paths
// in skipLoggingPaths are neither logged nor counted.
func RequestLogging(routes RouteMatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range skipLoggingPaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				written:        false,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)

			_, route := routes.Handler(r)
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
			metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", duration.Milliseconds(),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// Recover turns a panicking handler into a 500 and logs the stack.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("panic in handler",
				"path", r.URL.Path,
				"error", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)
			writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
