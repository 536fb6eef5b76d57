package model

import (
	"time"
)

const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// UploadTicket describes a presigned direct upload to object storage.
type UploadTicket struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StoredMedia is the result of a server-side upload.
type StoredMedia struct {
	Key         string `json:"fileId"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Kind        string `json:"kind"`
	Size        int64  `json:"size"`
}
