package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/vidshare/internal/app"
	"github.com/templui/vidshare/internal/config"
	"github.com/templui/vidshare/internal/db/dbtest"
	"github.com/templui/vidshare/internal/routes"
	"golang.org/x/crypto/bcrypt"
)

const publicURL = "https://cdn.example.com"

type memoryStorage struct {
	objects map[string][]byte
}

func (s *memoryStorage) Save(_ context.Context, key, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memoryStorage) PresignPut(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://bucket.example.com/" + key + "?signature=test", nil
}

func (s *memoryStorage) URL(key string) string {
	return publicURL + "/" + key
}

func (s *memoryStorage) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, publicURL+"/")
	return key, ok && key != ""
}

type testServer struct {
	app     *app.App
	handler http.Handler
	storage *memoryStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		AppName:                  "VidShare",
		AppEnv:                   "development",
		AppURL:                   "http://localhost:8090",
		JWTSecret:                "test-secret",
		JWTExpiry:                30 * 24 * time.Hour,
		JWTIssuer:                "vidshare",
		BcryptCost:               bcrypt.MinCost,
		TokenPasswordResetExpiry: 10 * time.Minute,
		AdminEmails:              []string{"root@example.com"},
		RateLimitAuth:            1000,
		RateLimitAuthWindow:      time.Minute,
		S3PresignExpiryUpload:    15 * time.Minute,
	}

	store := &memoryStorage{objects: map[string][]byte{}}
	a, err := app.Build(cfg, dbtest.New(t), store)
	require.NoError(t, err)

	return &testServer{app: a, handler: routes.SetupRoutes(a), storage: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, email, password string) string {
	t.Helper()

	rec := s.do(t, "POST", "/api/auth/register", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]string](t, rec)["userId"]
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := s.do(t, "POST", "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)["token"].(string)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	s.register(t, "Alice@Example.com", "secret1")

	rec := s.do(t, "POST", "/api/auth/register", "", map[string]string{"email": "alice@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email_already_exists", errorCode(t, rec))

	rec = s.do(t, "POST", "/api/auth/register", "", map[string]string{"email": "bob@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "weak_password", errorCode(t, rec))

	wrong := s.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "alice@example.com", "password": "nope-nope"})
	unknown := s.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "ghost@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	rec = s.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "alice@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[map[string]any](t, rec)
	assert.NotEmpty(t, login["token"])
	assert.Equal(t, "alice@example.com", login["user"].(map[string]any)["email"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec = s.do(t, "GET", "/api/auth/session", login["token"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[map[string]any](t, rec)
	assert.Equal(t, false, session["isAdmin"])
	assert.Equal(t, "alice@example.com", session["user"].(map[string]any)["email"])
}

func TestSessionCookieAuthenticates(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@example.com", "secret1")
	token := s.login(t, "alice@example.com", "secret1")

	req := httptest.NewRequest("GET", "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", decode[map[string]any](t, rec)["email"])
}

func TestGateOnRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, "GET", "/api/video", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, "GET", "/upload", "", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fupload", rec.Header().Get("Location"))

	rec = s.do(t, "POST", "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, "GET", "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = s.do(t, "GET", "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@example.com", "old-secret")

	known := s.do(t, "POST", "/api/auth/forgot-password", "", map[string]string{"email": "alice@example.com"})
	unknown := s.do(t, "POST", "/api/auth/forgot-password", "", map[string]string{"email": "ghost@example.com"})
	require.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())

	rec := s.do(t, "POST", "/api/auth/forgot-password", "", map[string]string{"email": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var token string
	err := s.app.DB.GetContext(context.Background(), &token, `SELECT reset_token FROM accounts WHERE email = $1`, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, token, 64)

	rec = s.do(t, "GET", "/api/auth/reset-password?token="+token, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "GET", "/api/auth/reset-password?token=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_or_expired_reset_token", errorCode(t, rec))

	rec = s.do(t, "GET", "/api/auth/reset-password", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "token_required", errorCode(t, rec))

	rec = s.do(t, "POST", "/api/auth/reset-password", "", map[string]string{"token": token, "newPassword": "new-secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, "POST", "/api/auth/reset-password", "", map[string]string{"token": token, "newPassword": "again-secret"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_or_expired_reset_token", errorCode(t, rec))

	s.login(t, "alice@example.com", "new-secret")
	rec = s.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "alice@example.com", "password": "old-secret"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVideoLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@example.com", "secret1")
	s.register(t, "bob@example.com", "secret1")
	alice := s.login(t, "alice@example.com", "secret1")
	bob := s.login(t, "bob@example.com", "secret1")

	rec := s.do(t, "POST", "/api/video", alice, map[string]any{
		"title":        "Sunset",
		"description":  "Beach at dusk",
		"videoUrl":     publicURL + "/videos/a/sunset.mp4",
		"thumbnailUrl": publicURL + "/images/a/sunset.png",
		"transformation": map[string]any{
			"quality": 90,
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	video := decode[map[string]any](t, rec)
	id := video["id"].(string)
	assert.Equal(t, true, video["controls"])
	assert.Equal(t, float64(120), video["width"])
	assert.Equal(t, float64(180), video["height"])
	assert.Equal(t, float64(90), video["quality"])

	rec = s.do(t, "POST", "/api/video", alice, map[string]any{"title": "No body"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "description_required", errorCode(t, rec))

	rec = s.do(t, "GET", "/api/video", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = s.do(t, "GET", "/api/video/"+id, bob, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "DELETE", "/api/video/"+id, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, "DELETE", "/api/video/"+id, alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "GET", "/api/video/"+id, alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "video_not_found", errorCode(t, rec))
}

func TestProfileUpdateReissuesSession(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@example.com", "secret1")
	token := s.login(t, "alice@example.com", "secret1")

	before := decode[map[string]any](t, s.do(t, "GET", "/api/auth/session", token, nil))

	rec := s.do(t, "PATCH", "/api/profile", token, map[string]string{"displayName": "Alice"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	update := decode[map[string]any](t, rec)
	assert.Equal(t, "Alice", update["user"].(map[string]any)["displayName"])
	reissued := update["token"].(string)

	after := decode[map[string]any](t, s.do(t, "GET", "/api/auth/session", reissued, nil))
	assert.Equal(t, "Alice", after["user"].(map[string]any)["name"])
	assert.Equal(t, before["expires"], after["expires"])

	rec = s.do(t, "PATCH", "/api/profile", token, map[string]string{"profileImage": "not a url"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_url", errorCode(t, rec))
}

func TestDeleteOwnAccount(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@example.com", "secret1")
	token := s.login(t, "alice@example.com", "secret1")

	rec := s.do(t, "DELETE", "/api/auth/delete-account", token, map[string]string{"password": "wrong-one"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_password", errorCode(t, rec))

	rec = s.do(t, "DELETE", "/api/auth/delete-account", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password_required", errorCode(t, rec))

	rec = s.do(t, "DELETE", "/api/auth/delete-account", token, map[string]string{"password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "alice@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// the token outlives the account; lookups report it gone
	rec = s.do(t, "GET", "/api/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminAuthorization(t *testing.T) {
	s := newTestServer(t)
	rootID := s.register(t, "root@example.com", "secret1")
	bobID := s.register(t, "bob@example.com", "secret1")
	root := s.login(t, "root@example.com", "secret1")
	bob := s.login(t, "bob@example.com", "secret1")

	rec := s.do(t, "GET", "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, "GET", "/api/admin/stats", bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", errorCode(t, rec))

	rec = s.do(t, "GET", "/api/auth/session", root, nil)
	assert.Equal(t, true, decode[map[string]any](t, rec)["isAdmin"])

	rec = s.do(t, "GET", "/api/admin/stats", root, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode[map[string]any](t, rec)["totalUsers"])

	rec = s.do(t, "GET", "/api/admin/users", root, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]map[string]any](t, rec)
	assert.Len(t, users, 2)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.do(t, "DELETE", "/api/admin/users/"+rootID, root, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cannot_delete_self", errorCode(t, rec))

	rec = s.do(t, "DELETE", "/api/admin/users/missing", root, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, "DELETE", "/api/admin/users/"+bobID, root, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "DELETE", "/api/admin/videos/missing", root, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMediaRoutes(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@example.com", "secret1")
	token := s.login(t, "alice@example.com", "secret1")

	rec := s.do(t, "GET", "/api/media/upload-auth?contentType=video/mp4&fileName=clip.mp4", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ticket := decode[map[string]any](t, rec)
	assert.Equal(t, "PUT", ticket["method"])
	assert.True(t, strings.HasPrefix(ticket["url"].(string), publicURL+"/videos/"))

	rec = s.do(t, "GET", "/api/media/upload-auth?contentType=text/html", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unsupported_media_type", errorCode(t, rec))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/media", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stored := decode[map[string]any](t, rec)
	assert.Equal(t, "image", stored["kind"])
	assert.Len(t, s.storage.objects, 1)

	rec = s.do(t, "POST", "/api/media", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "file_required", errorCode(t, rec))
}
