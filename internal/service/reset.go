package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/vidshare/internal/metrics"
	"github.com/templui/vidshare/internal/model"
	"github.com/templui/vidshare/internal/repository"
	"github.com/templui/vidshare/internal/validation"
)

// ResetRequestedMessage is returned for every accepted reset request, whether or not
// the email belongs to an account.
const ResetRequestedMessage = "If an account with this email exists, a password reset link has been sent."

// PasswordResetService issues single-use, short-lived reset tokens and consumes them.
// Expiry is checked at lookup time; nothing sweeps expired tokens in the background.
type PasswordResetService struct {
	accounts repository.AccountRepository
	auth     *AuthService
	mailer   Mailer
	ttl      time.Duration
	now      func() time.Time
	newToken func() (string, error)
}

func NewPasswordResetService(accounts repository.AccountRepository, auth *AuthService, mailer Mailer, ttl time.Duration) *PasswordResetService {
	return &PasswordResetService{
		accounts: accounts,
		auth:     auth,
		mailer:   mailer,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
		newToken: GenerateToken,
	}
}

// GenerateToken returns 32 random bytes, hex encoded.
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// RequestReset sets a new reset token for the account and hands it to the mailer.
// The only error a caller can observe for a present email is an infrastructure
// failure of the lookup itself, which does not depend on the account existing.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = validation.NormalizeEmail(email)
	if email == "" {
		return validation.ErrEmailRequired
	}

	metrics.PasswordResetRequests.Inc()

	account, err := s.accounts.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	token, err := s.newToken()
	if err != nil {
		slog.Error("failed to generate reset token", "error", err, "account_id", account.ID)
		return nil
	}

	now := s.now()
	err = s.accounts.SetResetToken(ctx, account.ID, token, now.Add(s.ttl), now)
	if err != nil {
		slog.Error("failed to store reset token", "error", err, "account_id", account.ID)
		return nil
	}

	err = s.mailer.SendPasswordResetEmail(ctx, account.Email, token, account.DisplayName)
	if err != nil {
		slog.Error("failed to deliver password reset email", "error", err, "account_id", account.ID)
		return nil
	}

	slog.Info("password reset token issued", "account_id", account.ID)
	return nil
}

// VerifyToken reports whether token is currently redeemable.
func (s *PasswordResetService) VerifyToken(ctx context.Context, token string) (*model.Account, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	account, err := s.accounts.ByResetToken(ctx, token, s.now())
	if err != nil {
		return nil, translate(err)
	}

	return account, nil
}

// CompleteReset replaces the password of the account holding token and clears the
// token in the same statement. A token can succeed at most once.
func (s *PasswordResetService) CompleteReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrTokenRequired
	}

	err := validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.accounts.ConsumeResetToken(ctx, token, hash, s.now())
	if err != nil {
		metrics.PasswordResetCompletions.WithLabelValues(metrics.ResultFailure).Inc()
		return translate(err)
	}

	metrics.PasswordResetCompletions.WithLabelValues(metrics.ResultSuccess).Inc()
	slog.Info("password reset completed", "account_id", account.ID)
	return nil
}

// PurgeExpired clears expired tokens from the store.
func (s *PasswordResetService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.accounts.ClearExpiredResetTokens(ctx, s.now())
}
