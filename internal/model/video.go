package model

import (
	"time"
)

const (
	VideoDefaultWidth  = 120
	VideoDefaultHeight = 180
)

type Video struct {
	ID           string    `db:"id" json:"id"`
	AccountID    string    `db:"account_id" json:"userId"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	VideoURL     string    `db:"video_url" json:"videoUrl"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnailUrl"`
	Controls     bool      `db:"controls" json:"controls"`
	Width        int       `db:"width" json:"width"`
	Height       int       `db:"height" json:"height"`
	Quality      *int      `db:"quality" json:"quality,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
