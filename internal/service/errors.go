package service

import (
	"errors"

	"github.com/templui/vidshare/internal/repository"
	"github.com/templui/vidshare/internal/validation"
)

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user already registered")
	ErrAccountNotFound       = errors.New("user not found")
	ErrVideoNotFound         = errors.New("video not found")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrMissingSigningSecret  = errors.New("session signing secret is not configured")
	ErrInvalidSession        = errors.New("invalid session")
	ErrSessionExpired        = errors.New("session expired")

	ErrTokenRequired    = &validation.Error{Code: "token_required", Message: "Token is required"}
	ErrInvalidPassword  = &validation.Error{Code: "invalid_password", Message: "Invalid password"}
	ErrCannotDeleteSelf = &validation.Error{Code: "cannot_delete_self", Message: "Cannot delete your own account"}
)

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	var v *validation.Error
	return errors.As(err, &v)
}

// translate maps repository sentinels onto the service taxonomy.
func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, repository.ErrVideoNotFound):
		return ErrVideoNotFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailAlreadyExists
	case errors.Is(err, repository.ErrResetTokenNotFound):
		return ErrInvalidOrExpiredToken
	default:
		return err
	}
}
