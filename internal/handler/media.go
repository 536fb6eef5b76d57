package handler

import (
	"errors"
	"net/http"

	"github.com/templui/vidshare/internal/ctxkeys"
	"github.com/templui/vidshare/internal/service"
	"github.com/templui/vidshare/internal/validation"
)

// maxUploadSize bounds the multipart body; per-kind limits are checked after parsing.
var maxUploadSize = validation.VideoConstraints.MaxSize + 1<<20

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// UploadAuth hands out a presigned PUT for a direct browser upload.
func (h *MediaHandler) UploadAuth(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	ticket, err := h.mediaService.UploadAuth(r.Context(), ctxkeys.AccountID(r.Context()), query.Get("contentType"), query.Get("fileName"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}

func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeServiceError(w, r, validation.ErrVideoTooLarge)
			return
		}
		writeServiceError(w, r, validation.ErrFileRequired)
		return
	}
	defer func() { _ = file.Close() }()

	media, err := h.mediaService.Upload(r.Context(), ctxkeys.AccountID(r.Context()), file, header)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, media)
}
