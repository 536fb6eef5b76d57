package middleware

import (
	"net/http"

	"github.com/templui/vidshare/internal/ctxkeys"
)

// SecurityHeaders sets response headers for a JSON API. HSTS is only sent in
// production, read from the config placed in the context by Config.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
