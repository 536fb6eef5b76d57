package service

import (
	"github.com/templui/vidshare/internal/validation"
)

// AdminAllowList is the operator-configured set of admin emails. It is built
// once at start-up and only read afterwards.
type AdminAllowList struct {
	emails map[string]struct{}
}

func NewAdminAllowList(emails []string) *AdminAllowList {
	set := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		email = validation.NormalizeEmail(email)
		if email != "" {
			set[email] = struct{}{}
		}
	}
	return &AdminAllowList{emails: set}
}

// IsAdmin reports membership of the normalized email.
func (l *AdminAllowList) IsAdmin(email string) bool {
	if l == nil {
		return false
	}
	_, ok := l.emails[validation.NormalizeEmail(email)]
	return ok
}

func (l *AdminAllowList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.emails)
}
