package model

import (
	"time"
)

type Account struct {
	ID                  string     `db:"id" json:"id"`
	Email               string     `db:"email" json:"email"`
	PasswordHash        string     `db:"password_hash" json:"-"`
	DisplayName         string     `db:"display_name" json:"displayName"`
	AvatarURL           string     `db:"avatar_url" json:"profileImage"`
	ResetToken          *string    `db:"reset_token" json:"-"`
	ResetTokenExpiresAt *time.Time `db:"reset_token_expires_at" json:"-"`
	CreatedAt           time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updatedAt"`
}

// HasActiveResetToken reports whether a reset token is set and not yet expired at now.
func (a *Account) HasActiveResetToken(now time.Time) bool {
	return a.ResetToken != nil && *a.ResetToken != "" &&
		a.ResetTokenExpiresAt != nil && a.ResetTokenExpiresAt.After(now)
}

// AccountSummary is the admin listing projection; credential columns are never selected.
type AccountSummary struct {
	ID          string    `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	DisplayName string    `db:"display_name" json:"displayName"`
	AvatarURL   string    `db:"avatar_url" json:"profileImage"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
