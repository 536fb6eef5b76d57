package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templui/vidshare/internal/db/dbtest"
	"github.com/templui/vidshare/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeMailer struct {
	mu          sync.Mutex
	resetTokens map[string][]string
	welcomed    []string
	deleted     []string
	err         error
}

func (m *fakeMailer) SendPasswordResetEmail(_ context.Context, email, token, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resetTokens == nil {
		m.resetTokens = map[string][]string{}
	}
	m.resetTokens[email] = append(m.resetTokens[email], token)
	return m.err
}

func (m *fakeMailer) SendWelcomeEmail(_ context.Context, email, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomed = append(m.welcomed, email)
	return m.err
}

func (m *fakeMailer) SendAccountDeletedEmail(_ context.Context, email, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, email)
	return m.err
}

func (m *fakeMailer) lastResetToken(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	tokens := m.resetTokens[email]
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

type fakeRemover struct {
	mu      sync.Mutex
	removed []string
	err     error
}

func (r *fakeRemover) RemoveByURL(_ context.Context, _, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, url)
	return r.err
}

type fixture struct {
	accounts repository.AccountRepository
	videos   repository.VideoRepository
	mailer   *fakeMailer
	media    *fakeRemover
	auth     *AuthService
	resets   *PasswordResetService
	account  *AccountService
	video    *VideoService
	admin    *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	database := dbtest.New(t)
	f := &fixture{
		accounts: repository.NewAccountRepository(database),
		videos:   repository.NewVideoRepository(database),
		mailer:   &fakeMailer{},
		media:    &fakeRemover{},
	}
	f.auth = NewAuthService(f.accounts, f.mailer, bcrypt.MinCost)
	f.resets = NewPasswordResetService(f.accounts, f.auth, f.mailer, 10*time.Minute)
	f.account = NewAccountService(f.accounts, f.videos, f.auth, f.media, f.mailer)
	f.video = NewVideoService(f.videos, f.media)
	f.admin = NewAdminService(f.accounts, f.videos, f.media)
	return f
}

// withStorage rewires the services to clean up through a MediaService over store.
func (f *fixture) withStorage(store *fakeStorage) {
	media := NewMediaService(store, 15*time.Minute)
	f.account = NewAccountService(f.accounts, f.videos, f.auth, media, f.mailer)
	f.video = NewVideoService(f.videos, media)
	f.admin = NewAdminService(f.accounts, f.videos, media)
}

func (f *fixture) register(t *testing.T, email, password string) string {
	t.Helper()

	account, err := f.auth.Register(context.Background(), email, password)
	require.NoError(t, err)
	return account.ID
}
