package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/templui/vidshare/internal/ctxkeys"
	"github.com/templui/vidshare/internal/service"
)

// publicPrefixes and publicPaths are the only routes reachable without a session.
var publicPrefixes = []string{
	"/api/auth/",
}

var publicPaths = map[string]bool{
	"/login":           true,
	"/register":        true,
	"/forgot-password": true,
	"/reset-password":  true,
	"/healthz":         true,
	"/readyz":          true,
	"/metrics":         true,
}

// IsProtected reports whether path requires a valid session.
func IsProtected(path string) bool {
	if publicPaths[path] {
		return false
	}
	if path == "/api/auth" {
		return false
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// Gate resolves the session for every request and stores the claims and admin
// flag in the context. Protected paths without a valid session are rejected:
// API paths with 401, everything else with a redirect to the login page.
func Gate(sessions *service.SessionIssuer, admins *service.AdminAllowList) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := service.TokenFromRequest(r)
			if token != "" {
				claims, err := sessions.Resolve(token)
				if err != nil {
					if !errors.Is(err, service.ErrSessionExpired) {
						slog.Debug("rejected session token", "path", r.URL.Path, "error", err)
					}
					if _, cookieErr := r.Cookie(service.SessionCookieName); cookieErr == nil {
						sessions.ClearCookie(w)
					}
				} else {
					ctx = ctxkeys.WithClaims(ctx, claims)
					ctx = ctxkeys.WithAdmin(ctx, admins.IsAdmin(claims.Email))
				}
			}

			r = r.WithContext(ctx)

			if IsProtected(r.URL.Path) && ctxkeys.Claims(ctx) == nil {
				rejectAnonymous(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession guards handlers on public prefixes that still need a session.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.Claims(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		next(w, r)
	}
}

// RequireAdmin checks the session first and admin membership second, so
// anonymous callers get 401 and authenticated non-admins get 403.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ctxkeys.Claims(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		if !ctxkeys.IsAdmin(r.Context()) {
			slog.Warn("admin access denied", "account_id", claims.AccountID(), "path", r.URL.Path)
			writeError(w, http.StatusForbidden, "forbidden", "Admin access required")
			return
		}
		next(w, r)
	}
}

func rejectAnonymous(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	target := "/login?callbackUrl=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusSeeOther)
}
