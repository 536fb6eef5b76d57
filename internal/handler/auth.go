package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/vidshare/internal/ctxkeys"
	"github.com/templui/vidshare/internal/model"
	"github.com/templui/vidshare/internal/service"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// sessionUser is the identity echoed to clients, built from claims or an account.
type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      sessionUser `json:"user"`
}

type sessionResponse struct {
	User    sessionUser `json:"user"`
	Expires time.Time   `json:"expires"`
	IsAdmin bool        `json:"isAdmin"`
}

type AuthHandler struct {
	authService    *service.AuthService
	sessions       *service.SessionIssuer
	resetService   *service.PasswordResetService
	accountService *service.AccountService
}

func NewAuthHandler(
	authService *service.AuthService,
	sessions *service.SessionIssuer,
	resetService *service.PasswordResetService,
	accountService *service.AccountService,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessions:       sessions,
		resetService:   resetService,
		accountService: accountService,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	account, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		UserID:  account.ID,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	account, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, claims, err := h.sessions.Issue(account)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	expiresAt := claims.ExpiresAt.Time
	h.sessions.SetCookie(w, token, expiresAt)
	slog.Info("account logged in", "account_id", account.ID)

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      userFromAccount(account),
	})
}

// Logout discards the client's session cookie. Issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims := ctxkeys.Claims(r.Context())

	writeJSON(w, http.StatusOK, sessionResponse{
		User:    userFromClaims(claims),
		Expires: claims.ExpiresAt.Time,
		IsAdmin: ctxkeys.IsAdmin(r.Context()),
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	err = h.resetService.RequestReset(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, service.ResetRequestedMessage)
}

func (h *AuthHandler) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	_, err := h.resetService.VerifyToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Token is valid")
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	err = h.resetService.CompleteReset(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password reset successfully")
}

func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	err = h.accountService.DeleteOwnAccount(r.Context(), ctxkeys.AccountID(r.Context()), req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.sessions.ClearCookie(w)
	writeMessage(w, http.StatusOK, "Account deleted successfully")
}

func userFromAccount(account *model.Account) sessionUser {
	return sessionUser{
		ID:    account.ID,
		Email: account.Email,
		Name:  account.DisplayName,
		Image: account.AvatarURL,
	}
}

func userFromClaims(claims *service.Claims) sessionUser {
	return sessionUser{
		ID:    claims.AccountID(),
		Email: claims.Email,
		Name:  claims.DisplayName,
		Image: claims.AvatarURL,
	}
}
