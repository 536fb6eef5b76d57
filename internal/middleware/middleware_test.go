package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/vidshare/internal/config"
	"github.com/templui/vidshare/internal/metrics"
)

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		headers    map[string]string
		remote     string
		want       string
	}{
		{"remote addr", false, nil, "192.0.2.1:5678", "192.0.2.1"},
		{"forwarded for ignored", false, map[string]string{"X-Forwarded-For": "203.0.113.7"}, "10.0.0.1:1234", "10.0.0.1"},
		{"real ip ignored", false, map[string]string{"X-Real-IP": "203.0.113.8"}, "10.0.0.1:1234", "10.0.0.1"},
		{"forwarded for trusted", true, map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:1234", "203.0.113.7"},
		{"real ip trusted", true, map[string]string{"X-Real-IP": "203.0.113.8"}, "10.0.0.1:1234", "203.0.113.8"},
		{"trusted without headers", true, nil, "192.0.2.1:5678", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			key, err := clientKey(tt.trustProxy)(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
		})
	}
}

func rateLimitedCall(handler http.HandlerFunc, remote, forwardedFor string) int {
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = remote
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec.Code
}

func TestRateLimitAuth(t *testing.T) {
	limited := RateLimitAuth(2, time.Minute, false)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, rateLimitedCall(limited, "203.0.113.1:1000", ""))
	assert.Equal(t, http.StatusNoContent, rateLimitedCall(limited, "203.0.113.1:1001", ""))
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedCall(limited, "203.0.113.1:1002", ""))

	// other clients keep their own budget
	assert.Equal(t, http.StatusNoContent, rateLimitedCall(limited, "203.0.113.2:1000", ""))
}

func TestRateLimitAuth_IgnoresForwardedHeadersByDefault(t *testing.T) {
	limited := RateLimitAuth(2, time.Minute, false)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, rateLimitedCall(limited, "203.0.113.1:1000", "198.51.100.1"))
	assert.Equal(t, http.StatusNoContent, rateLimitedCall(limited, "203.0.113.1:1000", "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedCall(limited, "203.0.113.1:1000", "198.51.100.3"))
}

func TestRateLimitAuth_TrustedProxy(t *testing.T) {
	limited := RateLimitAuth(2, time.Minute, true)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// every request arrives from the proxy; clients are told apart by the header
	assert.Equal(t, http.StatusNoContent, rateLimitedCall(limited, "10.0.0.1:1000", "198.51.100.1"))
	assert.Equal(t, http.StatusNoContent, rateLimitedCall(limited, "10.0.0.1:1000", "198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedCall(limited, "10.0.0.1:1000", "198.51.100.1"))
	assert.Equal(t, http.StatusNoContent, rateLimitedCall(limited, "10.0.0.1:1000", "198.51.100.2"))
}

func TestRecover(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/video", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}

func TestRecover_ReraisesAbortHandler(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	})
}

func TestSecurityHeaders(t *testing.T) {
	noop := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	for _, env := range []string{"development", "production"} {
		t.Run(env, func(t *testing.T) {
			handler := Chain(noop, Config(&config.Config{AppEnv: env}), SecurityHeaders)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			if env == "production" {
				assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
			} else {
				assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
			}
		})
	}
}

func TestRequestLogging_RecordsStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/video/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := RequestLogging(mux)(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/video/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestLogging_CountsRecoveredPanics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/video/{id}/explode", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := Chain(mux, RequestLogging(mux), Recover)

	counter := metrics.HTTPRequests.WithLabelValues("GET", "GET /api/video/{id}/explode", "500")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/video/42/explode", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(http.NotFoundHandler(), mark("first"), mark("second"), mark("third"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestCORS(t *testing.T) {
	noop := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest("OPTIONS", "/api/video", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	rec := httptest.NewRecorder()
	CORS(nil)(noop).ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	CORS([]string{"https://app.example.com"})(noop).ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
