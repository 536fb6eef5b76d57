package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/vidshare/internal/model"
	"github.com/templui/vidshare/internal/repository"
	"github.com/templui/vidshare/internal/validation"
)

// NewVideo is the input for publishing a video.
type NewVideo struct {
	validation.VideoInput
	Controls *bool
}

type VideoService struct {
	videos repository.VideoRepository
	media  ObjectRemover
	now    func() time.Time
}

func NewVideoService(videos repository.VideoRepository, media ObjectRemover) *VideoService {
	return &VideoService{
		videos: videos,
		media:  media,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns the feed, newest first.
func (s *VideoService) List(ctx context.Context) ([]*model.Video, error) {
	videos, err := s.videos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

func (s *VideoService) ByID(ctx context.Context, id string) (*model.Video, error) {
	video, err := s.videos.ByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return video, nil
}

func (s *VideoService) Create(ctx context.Context, accountID string, in NewVideo) (*model.Video, error) {
	err := validation.ValidateVideo(in.VideoInput)
	if err != nil {
		return nil, err
	}

	controls := true
	if in.Controls != nil {
		controls = *in.Controls
	}

	width, height := in.Width, in.Height
	if width == 0 {
		width = model.VideoDefaultWidth
	}
	if height == 0 {
		height = model.VideoDefaultHeight
	}

	now := s.now()
	video := &model.Video{
		ID:           uuid.New().String(),
		AccountID:    accountID,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		VideoURL:     strings.TrimSpace(in.VideoURL),
		ThumbnailURL: strings.TrimSpace(in.ThumbnailURL),
		Controls:     controls,
		Width:        width,
		Height:       height,
		Quality:      in.Quality,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.videos.Create(ctx, video)
	if err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	slog.Info("video created", "video_id", video.ID, "account_id", accountID)
	return video, nil
}

// Delete removes a video owned by accountID. Videos of other accounts are reported as not found.
func (s *VideoService) Delete(ctx context.Context, accountID, id string) error {
	video, err := s.videos.ByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if video.AccountID != accountID {
		return ErrVideoNotFound
	}

	err = s.videos.DeleteOwned(ctx, accountID, id)
	if err != nil {
		return translate(err)
	}

	removeMedia(ctx, s.media, video.AccountID, video.VideoURL, video.ThumbnailURL)
	return nil
}
