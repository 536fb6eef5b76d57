package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/vidshare/internal/model"
	"github.com/templui/vidshare/internal/repository"
)

// recentWindow is the look-back for the "recent" counters in Stats.
const recentWindow = 7 * 24 * time.Hour

// AdminService backs the moderation endpoints. Callers are expected to have
// passed the session and admin checks already.
type AdminService struct {
	accounts repository.AccountRepository
	videos   repository.VideoRepository
	media    ObjectRemover
	now      func() time.Time
}

func NewAdminService(accounts repository.AccountRepository, videos repository.VideoRepository, media ObjectRemover) *AdminService {
	return &AdminService{
		accounts: accounts,
		videos:   videos,
		media:    media,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*model.AccountSummary, error) {
	users, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes another account. Admins cannot delete themselves here.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	account, err := s.accounts.ByID(ctx, targetID)
	if err != nil {
		return translate(err)
	}

	if account.ID == actorID {
		return ErrCannotDeleteSelf
	}

	err = deleteAccount(ctx, s.accounts, s.videos, s.media, account)
	if err != nil {
		return err
	}

	slog.Info("account deleted by admin", "account_id", account.ID, "admin_id", actorID)
	return nil
}

func (s *AdminService) ListVideos(ctx context.Context) ([]*model.Video, error) {
	videos, err := s.videos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

func (s *AdminService) DeleteVideo(ctx context.Context, id string) error {
	video, err := s.videos.ByID(ctx, id)
	if err != nil {
		return translate(err)
	}

	err = s.videos.Delete(ctx, id)
	if err != nil {
		return translate(err)
	}

	removeMedia(ctx, s.media, video.AccountID, video.VideoURL, video.ThumbnailURL)
	slog.Info("video deleted by admin", "video_id", id)
	return nil
}

func (s *AdminService) Stats(ctx context.Context) (*model.Stats, error) {
	since := s.now().Add(-recentWindow)
	stats := &model.Stats{}

	var err error
	if stats.TotalUsers, err = s.accounts.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalVideos, err = s.videos.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}
	if stats.RecentUsers, err = s.accounts.CountCreatedSince(ctx, since); err != nil {
		return nil, fmt.Errorf("failed to count recent users: %w", err)
	}
	if stats.RecentVideos, err = s.videos.CountCreatedSince(ctx, since); err != nil {
		return nil, fmt.Errorf("failed to count recent videos: %w", err)
	}

	return stats, nil
}
