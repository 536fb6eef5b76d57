package validation

import (
	"net/mail"
	"strings"
)

// NormalizeEmail trims and lower-cases an address. Lookups and uniqueness use this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail validates email format and length
// Uses Go's built-in net/mail parser which follows RFC 5322
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	// RFC 5321: total max 254 with @
	if len(email) > 254 {
		return ErrEmailTooLong
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	return nil
}
