package model

import (
	"context"
	"io"
)

// Storage is the blob store. Upload returns a URL the object can be fetched from.
type Storage interface {
	Upload(ctx context.Context, key, contentType string, reader io.Reader, size int64) (string, error)
}

// DocumentUpload describes an uploaded document.
type DocumentUpload struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}
