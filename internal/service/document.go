package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
)

// Document uploads files to the blob store. A nil storage means the store is not configured.
type Document struct {
	storage model.Storage
	logger  *logger.Logger
}

// NewDocument creates the upload service. storage may be nil.
func NewDocument(storage model.Storage, logger *logger.Logger) *Document {
	return &Document{storage: storage, logger: logger}
}

// Upload stores the file under the user's prefix with a random name that keeps the extension.
func (s *Document) Upload(
	ctx context.Context,
	userID, fileName, contentType string,
	reader io.Reader,
	size int64,
) (model.DocumentUpload, error) {
	if s.storage == nil {
		return model.DocumentUpload{}, fmt.Errorf("document storage is not configured: %w", model.ErrUpstreamUnavailable)
	}

	key := userID + "/" + uuid.NewString() + strings.ToLower(path.Ext(fileName))

	url, err := s.storage.Upload(ctx, key, contentType, reader, size)
	if err != nil {
		s.logger.Error("Document service: failed to upload",
			"user_id", userID,
			"key", key,
			"error", err.Error())
		return model.DocumentUpload{}, fmt.Errorf("failed to upload document: %w", err)
	}

	s.logger.Info("Document service: document uploaded",
		"user_id", userID,
		"key", key,
		"size", size)

	return model.DocumentUpload{
		URL:      url,
		FileName: fileName,
		Size:     size,
		Type:     contentType,
	}, nil
}
