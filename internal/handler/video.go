package handler

import (
	"net/http"

	"github.com/templui/vidshare/internal/ctxkeys"
	"github.com/templui/vidshare/internal/service"
	"github.com/templui/vidshare/internal/validation"
)

type videoRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	VideoURL       string `json:"videoUrl"`
	ThumbnailURL   string `json:"thumbnailUrl"`
	Controls       *bool  `json:"controls"`
	Transformation struct {
		Width   int  `json:"width"`
		Height  int  `json:"height"`
		Quality *int `json:"quality"`
	} `json:"transformation"`
}

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
	}
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videoService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videos)
}

func (h *VideoHandler) Show(w http.ResponseWriter, r *http.Request) {
	video, err := h.videoService.ByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	video, err := h.videoService.Create(r.Context(), ctxkeys.AccountID(r.Context()), service.NewVideo{
		VideoInput: validation.VideoInput{
			Title:        req.Title,
			Description:  req.Description,
			VideoURL:     req.VideoURL,
			ThumbnailURL: req.ThumbnailURL,
			Width:        req.Transformation.Width,
			Height:       req.Transformation.Height,
			Quality:      req.Transformation.Quality,
		},
		Controls: req.Controls,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, video)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.videoService.Delete(r.Context(), ctxkeys.AccountID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Video deleted successfully")
}
