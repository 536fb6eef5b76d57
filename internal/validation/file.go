package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// MediaConstraints defines validation rules for one kind of upload
type MediaConstraints struct {
	Kind        string
	MimePrefix  string
	MaxSize     int64
	ErrTooLarge error
}

var (
	ImageConstraints = MediaConstraints{
		Kind:        "image",
		MimePrefix:  "image/",
		MaxSize:     5 << 20, // 5MB
		ErrTooLarge: ErrImageTooLarge,
	}

	VideoConstraints = MediaConstraints{
		Kind:        "video",
		MimePrefix:  "video/",
		MaxSize:     100 << 20, // 100MB
		ErrTooLarge: ErrVideoTooLarge,
	}
)

// MediaType classifies a declared content type as image or video.
func MediaType(contentType string) (MediaConstraints, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(contentType, ImageConstraints.MimePrefix):
		return ImageConstraints, nil
	case strings.HasPrefix(contentType, VideoConstraints.MimePrefix):
		return VideoConstraints, nil
	default:
		return MediaConstraints{}, ErrUnsupportedMedia
	}
}

// ValidateMedia checks an uploaded file against the image and video rules.
// The type is detected from the file content (magic numbers), not the client header.
// Returns the matching constraints and the detected MIME type.
func ValidateMedia(header *multipart.FileHeader) (MediaConstraints, string, error) {
	if header == nil {
		return MediaConstraints{}, "", ErrFileRequired
	}

	file, err := header.Open()
	if err != nil {
		return MediaConstraints{}, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// http.DetectContentType reads max 512 bytes
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return MediaConstraints{}, "", fmt.Errorf("failed to read file: %w", err)
	}

	detectedType := http.DetectContentType(buffer[:n])
	constraints, err := MediaType(detectedType)
	if err != nil {
		return MediaConstraints{}, detectedType, err
	}

	if header.Size > constraints.MaxSize {
		return constraints, detectedType, constraints.ErrTooLarge
	}

	return constraints, detectedType, nil
}
