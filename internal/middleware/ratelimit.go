package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitAuth creates middleware for auth endpoints. One limiter is shared
// by every route it wraps, counting requests per client IP.
//
// The client IP is the connection's RemoteAddr unless trustProxy is set, in
// which case True-Client-IP, X-Real-IP and X-Forwarded-For are honoured. Only
// enable it behind a proxy that overwrites those headers.
func RateLimitAuth(limit int, window time.Duration, trustProxy bool) func(http.HandlerFunc) http.HandlerFunc {
	keyFunc := clientKey(trustProxy)

	limiter := httprate.Limit(limit, window,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			ip, _ := keyFunc(r)
			slog.Warn("rate limit exceeded",
				"ip", ip,
				"path", r.URL.Path,
			)
			writeError(w, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please try again later.")
		}),
	)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return limiter(next).ServeHTTP
	}
}

func clientKey(trustProxy bool) httprate.KeyFunc {
	if trustProxy {
		return httprate.KeyByRealIP
	}
	return httprate.KeyByIP
}
