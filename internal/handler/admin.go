package handler

import (
	"net/http"

	"github.com/templui/vidshare/internal/ctxkeys"
	"github.com/templui/vidshare/internal/service"
)

// AdminHandler serves the moderation API. Routes are wrapped in RequireAdmin.
type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.adminService.DeleteUser(r.Context(), ctxkeys.AccountID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *AdminHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.adminService.ListVideos(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videos)
}

func (h *AdminHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	err := h.adminService.DeleteVideo(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Video deleted successfully")
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
