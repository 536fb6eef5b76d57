package validation

import "strings"

// VideoInput is the client-supplied part of a video record.
type VideoInput struct {
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Width        int
	Height       int
	Quality      *int
}

func ValidateVideo(in VideoInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrDescriptionMissing
	}
	if strings.TrimSpace(in.VideoURL) == "" {
		return ErrVideoURLRequired
	}
	if err := ValidateMediaURL(in.VideoURL); err != nil {
		return err
	}
	if strings.TrimSpace(in.ThumbnailURL) == "" {
		return ErrThumbnailRequired
	}
	if err := ValidateMediaURL(in.ThumbnailURL); err != nil {
		return err
	}
	if in.Width < 0 || in.Height < 0 {
		return ErrInvalidDimensions
	}
	if in.Quality != nil && (*in.Quality < 1 || *in.Quality > 100) {
		return ErrInvalidQuality
	}
	return nil
}
