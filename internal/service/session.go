package service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/templui/vidshare/internal/model"
)

const SessionCookieName = "auth_token"

// Claims is the identity carried by a session token. The account id is the
// registered subject.
type Claims struct {
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	AvatarURL   string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) AccountID() string {
	return c.Subject
}

// SessionIssuer signs and resolves session tokens. Tokens are self-contained:
// resolving never reads the account store, and there is no revocation list.
type SessionIssuer struct {
	secret       []byte
	ttl          time.Duration
	issuer       string
	secureCookie bool
	now          func() time.Time
}

func NewSessionIssuer(secret string, ttl time.Duration, issuer string, secureCookie bool) (*SessionIssuer, error) {
	if secret == "" {
		return nil, ErrMissingSigningSecret
	}

	return &SessionIssuer{
		secret:       []byte(secret),
		ttl:          ttl,
		issuer:       issuer,
		secureCookie: secureCookie,
		now:          time.Now,
	}, nil
}

// Issue signs a fresh claim for account, valid for the configured TTL.
func (s *SessionIssuer) Issue(account *model.Account) (string, *Claims, error) {
	now := s.now()
	return s.sign(account, now, now.Add(s.ttl))
}

// Reissue signs a new claim carrying account's current profile values. The
// expiry of prev is kept, so reissuing never extends a session.
func (s *SessionIssuer) Reissue(prev *Claims, account *model.Account) (string, *Claims, error) {
	if prev == nil || prev.ExpiresAt == nil {
		return s.Issue(account)
	}

	now := s.now()
	expiresAt := prev.ExpiresAt.Time
	if !expiresAt.After(now) {
		return "", nil, ErrSessionExpired
	}

	return s.sign(account, now, expiresAt)
}

func (s *SessionIssuer) sign(account *model.Account, issuedAt, expiresAt time.Time) (string, *Claims, error) {
	claims := &Claims{
		Email:       account.Email,
		DisplayName: account.DisplayName,
		AvatarURL:   account.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}

	return tokenString, claims, nil
}

// Resolve verifies signature, algorithm, issuer and expiry.
func (s *SessionIssuer) Resolve(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidSession
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// TokenFromRequest reads a bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *SessionIssuer) SetCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie discards the client's session. It is the whole of logout.
func (s *SessionIssuer) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
