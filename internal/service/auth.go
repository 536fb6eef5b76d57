package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/templui/vidshare/internal/metrics"
	"github.com/templui/vidshare/internal/model"
	"github.com/templui/vidshare/internal/repository"
	"github.com/templui/vidshare/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns account credentials: registration, password hashing and
// password verification.
type AuthService struct {
	accounts  repository.AccountRepository
	mailer    Mailer
	hashCost  int
	dummyHash []byte
	now       func() time.Time
}

func NewAuthService(accounts repository.AccountRepository, mailer Mailer, hashCost int) *AuthService {
	s := &AuthService{
		accounts: accounts,
		mailer:   mailer,
		hashCost: hashCost,
		now:      func() time.Time { return time.Now().UTC() },
	}

	// compared against when the email is unknown so both failure paths cost one bcrypt run
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), hashCost)
	if err == nil {
		s.dummyHash = dummy
	}

	return s
}

// Register creates an account and returns it. Only the bcrypt hash of the password is stored.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.Account, error) {
	email = validation.NormalizeEmail(email)

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, err
	}

	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	account := &model.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	metrics.Registrations.Inc()
	slog.Info("account registered", "account_id", account.ID)

	err = s.mailer.SendWelcomeEmail(ctx, account.Email, account.DisplayName)
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "account_id", account.ID)
	}

	return account, nil
}

// Authenticate returns the account for a matching email and password. Unknown
// email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.Account, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttempts.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, ErrInvalidCredentials
	}

	account, err := s.accounts.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			if s.dummyHash != nil {
				_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			}
			metrics.LoginAttempts.WithLabelValues(metrics.ResultFailure).Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	err = s.ComparePassword(password, account.PasswordHash)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, ErrInvalidCredentials
	}

	metrics.LoginAttempts.WithLabelValues(metrics.ResultSuccess).Inc()
	return account, nil
}

// VerifyPassword reports whether the credentials match an account. A missing
// account is false, not an error; only store failures return an error.
func (s *AuthService) VerifyPassword(ctx context.Context, email, password string) (bool, error) {
	_, err := s.Authenticate(ctx, email, password)
	if errors.Is(err, ErrInvalidCredentials) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
