package validation

import (
	"net/url"
)

// ValidateMediaURL accepts absolute http(s) URLs only.
func ValidateMediaURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidMediaURL
	}
	return nil
}
