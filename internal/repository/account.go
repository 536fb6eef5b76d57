package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/vidshare/internal/model"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrResetTokenNotFound = errors.New("reset token not found or expired")
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	ByID(ctx context.Context, id string) (*model.Account, error)
	ByEmail(ctx context.Context, email string) (*model.Account, error)
	List(ctx context.Context) ([]*model.AccountSummary, error)
	UpdateProfile(ctx context.Context, id, displayName, avatarURL string, now time.Time) (*model.Account, error)
	SetResetToken(ctx context.Context, id, token string, expiresAt, now time.Time) error
	ByResetToken(ctx context.Context, token string, now time.Time) (*model.Account, error)
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*model.Account, error)
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `INSERT INTO accounts (id, email, password_hash, display_name, avatar_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.DisplayName,
		account.AvatarURL,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *accountRepository) ByID(ctx context.Context, id string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE id = $1`

	err := r.db.GetContext(ctx, account, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (r *accountRepository) ByEmail(ctx context.Context, email string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE email = $1`

	err := r.db.GetContext(ctx, account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]*model.AccountSummary, error) {
	accounts := []*model.AccountSummary{}
	query := `SELECT id, email, display_name, avatar_url, created_at, updated_at
	          FROM accounts ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &accounts, query)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *accountRepository) UpdateProfile(ctx context.Context, id, displayName, avatarURL string, now time.Time) (*model.Account, error) {
	account := &model.Account{}
	query := `UPDATE accounts
	          SET display_name = $1, avatar_url = $2, updated_at = $3
	          WHERE id = $4
	          RETURNING *`

	err := r.db.GetContext(ctx, account, query, displayName, avatarURL, now, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

// SetResetToken stores token as the account's only reset token; any prior token is overwritten.
func (r *accountRepository) SetResetToken(ctx context.Context, id, token string, expiresAt, now time.Time) error {
	query := `UPDATE accounts
	          SET reset_token = $1, reset_token_expires_at = $2, updated_at = $3
	          WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, token, expiresAt, now, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// ByResetToken finds the account holding token, ignoring tokens expired at now.
func (r *accountRepository) ByResetToken(ctx context.Context, token string, now time.Time) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE reset_token = $1 AND reset_token_expires_at > $2`

	err := r.db.GetContext(ctx, account, query, token, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResetTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

// ConsumeResetToken replaces the password hash and clears the token in one statement.
// Of two concurrent calls with the same token only one matches a row; the other
// gets ErrResetTokenNotFound.
func (r *accountRepository) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*model.Account, error) {
	account := &model.Account{}
	query := `UPDATE accounts
	          SET password_hash = $1, reset_token = NULL, reset_token_expires_at = NULL, updated_at = $2
	          WHERE reset_token = $3
	          AND reset_token_expires_at > $4
	          RETURNING *`

	err := r.db.GetContext(ctx, account, query, passwordHash, now, token, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResetTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

// ClearExpiredResetTokens removes reset tokens whose expiry has passed. Lookups already
// ignore them; this only tidies the rows.
func (r *accountRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE accounts
	          SET reset_token = NULL, reset_token_expires_at = NULL
	          WHERE reset_token IS NOT NULL AND reset_token_expires_at <= $1`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM accounts`)
	return count, err
}

func (r *accountRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM accounts WHERE created_at >= $1`, since)
	return count, err
}

// isUniqueViolation works for both SQLite and PostgreSQL error texts.
func isUniqueViolation(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value")
}
