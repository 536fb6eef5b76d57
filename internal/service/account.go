package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/templui/vidshare/internal/model"
	"github.com/templui/vidshare/internal/repository"
	"github.com/templui/vidshare/internal/validation"
)

// ProfileUpdate carries optional profile fields; nil leaves a field unchanged.
type ProfileUpdate struct {
	DisplayName *string
	AvatarURL   *string
}

type AccountService struct {
	accounts repository.AccountRepository
	videos   repository.VideoRepository
	auth     *AuthService
	media    ObjectRemover
	mailer   Mailer
	now      func() time.Time
}

func NewAccountService(
	accounts repository.AccountRepository,
	videos repository.VideoRepository,
	auth *AuthService,
	media ObjectRemover,
	mailer Mailer,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		videos:   videos,
		auth:     auth,
		media:    media,
		mailer:   mailer,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AccountService) Me(ctx context.Context, accountID string) (*model.Account, error) {
	account, err := s.accounts.ByID(ctx, accountID)
	if err != nil {
		return nil, translate(err)
	}
	return account, nil
}

// DeleteOwnAccount removes the caller's account after re-checking the password.
// The account's videos go with it.
func (s *AccountService) DeleteOwnAccount(ctx context.Context, accountID, password string) error {
	if password == "" {
		return validation.ErrPasswordRequired
	}

	account, err := s.accounts.ByID(ctx, accountID)
	if err != nil {
		return translate(err)
	}

	err = s.auth.ComparePassword(password, account.PasswordHash)
	if err != nil {
		return ErrInvalidPassword
	}

	err = deleteAccount(ctx, s.accounts, s.videos, s.media, account)
	if err != nil {
		return err
	}

	err = s.mailer.SendAccountDeletedEmail(ctx, account.Email, account.DisplayName)
	if err != nil {
		slog.Warn("failed to send account deleted email", "account_id", account.ID, "error", err)
	}

	slog.Info("account deleted by owner", "account_id", account.ID)
	return nil
}

// UpdateProfile applies the given fields and returns the stored account.
// Callers holding a session must reissue it to pick up the new values.
func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, update ProfileUpdate) (*model.Account, error) {
	account, err := s.accounts.ByID(ctx, accountID)
	if err != nil {
		return nil, translate(err)
	}

	displayName := account.DisplayName
	if update.DisplayName != nil {
		displayName = strings.TrimSpace(*update.DisplayName)
		err = validation.ValidateDisplayName(displayName)
		if err != nil {
			return nil, err
		}
	}

	avatarURL := account.AvatarURL
	if update.AvatarURL != nil {
		avatarURL = strings.TrimSpace(*update.AvatarURL)
		if avatarURL != "" {
			err = validation.ValidateMediaURL(avatarURL)
			if err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.accounts.UpdateProfile(ctx, accountID, displayName, avatarURL, s.now())
	if err != nil {
		return nil, translate(err)
	}

	if account.AvatarURL != "" && account.AvatarURL != updated.AvatarURL {
		removeMedia(ctx, s.media, account.ID, account.AvatarURL)
	}

	return updated, nil
}

// deleteAccount removes stored media first, then the row. Foreign key CASCADE
// deletes the account's videos.
func deleteAccount(ctx context.Context, accounts repository.AccountRepository, videos repository.VideoRepository, media ObjectRemover, account *model.Account) error {
	owned, err := videos.ByAccount(ctx, account.ID)
	if err != nil {
		slog.Warn("failed to list account videos for media cleanup", "account_id", account.ID, "error", err)
	}

	urls := []string{account.AvatarURL}
	for _, video := range owned {
		urls = append(urls, video.VideoURL, video.ThumbnailURL)
	}
	removeMedia(ctx, media, account.ID, urls...)

	err = accounts.Delete(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}
