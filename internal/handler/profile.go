package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/vidshare/internal/ctxkeys"
	"github.com/templui/vidshare/internal/service"
)

type profileResponse struct {
	DisplayName  string `json:"displayName"`
	ProfileImage string `json:"profileImage"`
	Email        string `json:"email"`
}

type profileUpdateResponse struct {
	Message string          `json:"message"`
	User    profileResponse `json:"user"`
	Token   string          `json:"token,omitempty"`
}

type ProfileHandler struct {
	accountService *service.AccountService
	sessions       *service.SessionIssuer
}

func NewProfileHandler(accountService *service.AccountService, sessions *service.SessionIssuer) *ProfileHandler {
	return &ProfileHandler{
		accountService: accountService,
		sessions:       sessions,
	}
}

func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountService.Me(r.Context(), ctxkeys.AccountID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Update applies the optional fields and reissues the session so the claims
// carry the new values. The reissued token keeps the original expiry.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName  *string `json:"displayName"`
		ProfileImage *string `json:"profileImage"`
	}
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	claims := ctxkeys.Claims(r.Context())
	account, err := h.accountService.UpdateProfile(r.Context(), claims.AccountID(), service.ProfileUpdate{
		DisplayName: req.DisplayName,
		AvatarURL:   req.ProfileImage,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := profileUpdateResponse{
		Message: "Profile updated successfully",
		User: profileResponse{
			DisplayName:  account.DisplayName,
			ProfileImage: account.AvatarURL,
			Email:        account.Email,
		},
	}

	token, reissued, err := h.sessions.Reissue(claims, account)
	if err != nil {
		slog.Warn("failed to reissue session after profile update", "account_id", account.ID, "error", err)
	} else {
		h.sessions.SetCookie(w, token, reissued.ExpiresAt.Time)
		resp.Token = token
	}

	writeJSON(w, http.StatusOK, resp)
}
