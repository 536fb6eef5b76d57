package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/vidshare/internal/model"
	"github.com/templui/vidshare/internal/storage"
	"github.com/templui/vidshare/internal/validation"
)

// ObjectRemover deletes stored media referenced by URL on behalf of its owner.
type ObjectRemover interface {
	RemoveByURL(ctx context.Context, accountID, url string) error
}

// MediaService is the upload collaborator: it hands out direct-upload tickets,
// accepts server-side uploads and removes objects when their owners go away.
type MediaService struct {
	storage      storage.Storage
	uploadExpiry time.Duration
	now          func() time.Time
}

func NewMediaService(storage storage.Storage, uploadExpiry time.Duration) *MediaService {
	return &MediaService{
		storage:      storage,
		uploadExpiry: uploadExpiry,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// UploadAuth returns a presigned PUT for one object of the declared content type.
func (s *MediaService) UploadAuth(ctx context.Context, accountID, contentType, filename string) (*model.UploadTicket, error) {
	constraints, err := validation.MediaType(contentType)
	if err != nil {
		return nil, err
	}

	key := objectKey(constraints.Kind, accountID, filename)
	uploadURL, err := s.storage.PresignPut(ctx, key, contentType, s.uploadExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &model.UploadTicket{
		Key:       key,
		UploadURL: uploadURL,
		PublicURL: s.storage.URL(key),
		Method:    "PUT",
		ExpiresAt: s.now().Add(s.uploadExpiry),
	}, nil
}

// Upload stores a file sent through the API. The caller closes file.
func (s *MediaService) Upload(ctx context.Context, accountID string, file multipart.File, header *multipart.FileHeader) (*model.StoredMedia, error) {
	constraints, contentType, err := validation.ValidateMedia(header)
	if err != nil {
		return nil, err
	}

	key := objectKey(constraints.Kind, accountID, header.Filename)
	err = s.storage.Save(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	slog.Info("media uploaded", "account_id", accountID, "key", key, "size", header.Size, "type", contentType)

	return &model.StoredMedia{
		Key:         key,
		Name:        path.Base(key),
		URL:         s.storage.URL(key),
		ContentType: contentType,
		Kind:        constraints.Kind,
		Size:        header.Size,
	}, nil
}

// RemoveByURL deletes the object behind url when it was uploaded by accountID.
// URLs outside the store and keys under another account's prefix are left alone:
// media URLs are client-supplied and may point at anything.
func (s *MediaService) RemoveByURL(ctx context.Context, accountID, url string) error {
	key, ok := s.storage.KeyFromURL(url)
	if !ok {
		return nil
	}
	if !ownsKey(accountID, key) {
		slog.Warn("skipped deleting media owned by another account", "account_id", accountID, "key", key)
		return nil
	}
	return s.storage.Delete(ctx, key)
}

// objectKey lays objects out as <kind>s/<account>/<uuid><ext>.
func objectKey(kind, accountID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	return path.Join(kind+"s", accountID, uuid.New().String()+ext)
}

// ownsKey reports whether key sits directly under one of accountID's upload prefixes.
func ownsKey(accountID, key string) bool {
	if accountID == "" || path.Clean(key) != key {
		return false
	}
	for _, kind := range []string{model.MediaKindImage, model.MediaKindVideo} {
		rest, ok := strings.CutPrefix(key, kind+"s/"+accountID+"/")
		if ok && rest != "" && !strings.Contains(rest, "/") {
			return true
		}
	}
	return false
}

// removeMedia deletes each of accountID's URLs best-effort; orphaned objects are
// preferred over failed deletions.
func removeMedia(ctx context.Context, remover ObjectRemover, accountID string, urls ...string) {
	if remover == nil {
		return
	}
	for _, url := range urls {
		if url == "" {
			continue
		}
		err := remover.RemoveByURL(ctx, accountID, url)
		if err != nil {
			slog.Warn("failed to delete media from storage", "url", url, "error", err)
		}
	}
}
