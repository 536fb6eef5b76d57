package validation

import (
	"strings"
	"unicode/utf8"
)

// ValidateDisplayName validates a profile display name. Empty is allowed.
func ValidateDisplayName(name string) error {
	trimmed := strings.TrimSpace(name)

	if utf8.RuneCountInString(trimmed) > 100 {
		return ErrDisplayNameTooLong
	}

	return nil
}
