package handler

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"
)

// Pinger is a dependency checked by the readiness endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type livenessResponse struct {
	Status     string `json:"status"`
	Host       string `json:"host"`
	GOMAXPROCS int    `json:"gomaxprocs"`
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	host, _ := os.Hostname()
	if host == "" {
		host = "unavailable"
	}

	writeJSON(w, http.StatusOK, livenessResponse{
		Status:     "up",
		Host:       host,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	if err != nil {
		slog.Error("readiness check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database_unavailable", "Database is not reachable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
