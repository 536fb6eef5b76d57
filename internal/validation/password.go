package validation

const (
	PasswordMinLength = 6
	// bcrypt silently truncates input past 72 bytes
	PasswordMaxLength = 72
)

// ValidatePassword enforces the password length policy.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	if len(password) < PasswordMinLength {
		return ErrWeakPassword
	}

	if len(password) > PasswordMaxLength {
		return ErrPasswordTooLong
	}

	return nil
}
