package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/templui/vidshare/internal/app"
	"github.com/templui/vidshare/internal/handler"
	"github.com/templui/vidshare/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.Sessions, app.PasswordResetService, app.AccountService)
	profile := handler.NewProfileHandler(app.AccountService, app.Sessions)
	video := handler.NewVideoHandler(app.VideoService)
	media := handler.NewMediaHandler(app.MediaService)
	admin := handler.NewAdminHandler(app.AdminService)

	mux := http.NewServeMux()

	// ============================================================================
	// OPERATIONS
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Liveness)
	mux.HandleFunc("GET /readyz", health.Readiness)
	mux.Handle("GET /metrics", promhttp.Handler())

	// ============================================================================
	// AUTH (public prefix, rate limited)
	// ============================================================================

	rateLimiter := middleware.RateLimitAuth(app.Cfg.RateLimitAuth, app.Cfg.RateLimitAuthWindow, app.Cfg.TrustProxyHeaders)

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/forgot-password", rateLimiter(auth.ForgotPassword))
	mux.HandleFunc("GET /api/auth/reset-password", rateLimiter(auth.VerifyResetToken))
	mux.HandleFunc("POST /api/auth/reset-password", rateLimiter(auth.ResetPassword))

	// Session-bound endpoints under the public prefix
	mux.HandleFunc("POST /api/auth/logout", middleware.RequireSession(auth.Logout))
	mux.HandleFunc("GET /api/auth/session", middleware.RequireSession(auth.Session))
	mux.HandleFunc("DELETE /api/auth/delete-account", rateLimiter(middleware.RequireSession(auth.DeleteAccount)))

	// ============================================================================
	// PROTECTED ROUTES (session enforced by the gate)
	// ============================================================================

	// Profile
	mux.HandleFunc("GET /api/profile", profile.Show)
	mux.HandleFunc("PATCH /api/profile", profile.Update)

	// Videos
	mux.HandleFunc("GET /api/video", video.List)
	mux.HandleFunc("POST /api/video", video.Create)
	mux.HandleFunc("GET /api/video/{id}", video.Show)
	mux.HandleFunc("DELETE /api/video/{id}", video.Delete)

	// Media
	mux.HandleFunc("GET /api/media/upload-auth", media.UploadAuth)
	mux.HandleFunc("POST /api/media", media.Upload)

	// ============================================================================
	// ADMIN (session + admin allow-list)
	// ============================================================================

	mux.HandleFunc("GET /api/admin/users", middleware.RequireAdmin(admin.ListUsers))
	mux.HandleFunc("DELETE /api/admin/users/{id}", middleware.RequireAdmin(admin.DeleteUser))
	mux.HandleFunc("GET /api/admin/videos", middleware.RequireAdmin(admin.ListVideos))
	mux.HandleFunc("DELETE /api/admin/videos/{id}", middleware.RequireAdmin(admin.DeleteVideo))
	mux.HandleFunc("GET /api/admin/stats", middleware.RequireAdmin(admin.Stats))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging(mux), // outside Recover so panics are logged and counted as 500
		middleware.Recover,
		middleware.Config(app.Cfg), // Config must precede SecurityHeaders
		middleware.SecurityHeaders,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
		middleware.Gate(app.Sessions, app.Admins),
	)

	return handler
}
