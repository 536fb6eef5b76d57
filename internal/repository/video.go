package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/vidshare/internal/model"
)

var (
	ErrVideoNotFound = errors.New("video not found")
)

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	ByID(ctx context.Context, id string) (*model.Video, error)
	List(ctx context.Context) ([]*model.Video, error)
	ByAccount(ctx context.Context, accountID string) ([]*model.Video, error)
	Delete(ctx context.Context, id string) error
	DeleteOwned(ctx context.Context, accountID, id string) error
	Count(ctx context.Context) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

type videoRepository struct {
	db *sqlx.DB
}

func NewVideoRepository(db *sqlx.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	query := `INSERT INTO videos (id, account_id, title, description, video_url, thumbnail_url, controls, width, height, quality, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		video.ID,
		video.AccountID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.Controls,
		video.Width,
		video.Height,
		video.Quality,
		video.CreatedAt,
		video.UpdatedAt,
	)

	return err
}

func (r *videoRepository) ByID(ctx context.Context, id string) (*model.Video, error) {
	video := &model.Video{}
	query := `SELECT * FROM videos WHERE id = $1`

	err := r.db.GetContext(ctx, video, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}

	return video, nil
}

func (r *videoRepository) List(ctx context.Context) ([]*model.Video, error) {
	videos := []*model.Video{}
	query := `SELECT * FROM videos ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &videos, query)
	if err != nil {
		return nil, err
	}

	return videos, nil
}

func (r *videoRepository) ByAccount(ctx context.Context, accountID string) ([]*model.Video, error) {
	videos := []*model.Video{}
	query := `SELECT * FROM videos WHERE account_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &videos, query, accountID)
	if err != nil {
		return nil, err
	}

	return videos, nil
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireAffected(result, ErrVideoNotFound)
}

// DeleteOwned deletes the video only when accountID owns it.
func (r *videoRepository) DeleteOwned(ctx context.Context, accountID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return err
	}

	return requireAffected(result, ErrVideoNotFound)
}

func (r *videoRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM videos`)
	return count, err
}

func (r *videoRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM videos WHERE created_at >= $1`, since)
	return count, err
}

func requireAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
