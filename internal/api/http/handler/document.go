package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
)

const defaultContentType = "application/octet-stream"

// DocumentService stores uploaded files.
type DocumentService interface {
	Upload(ctx context.Context, userID, fileName, contentType string, reader io.Reader, size int64) (model.DocumentUpload, error)
}

// Document serves /documents/upload.
type Document struct {
	documents      DocumentService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewDocument(documents DocumentService, contextManager model.ContextManager, logger *logger.Logger) *Document {
	return &Document{documents: documents, contextManager: contextManager, logger: logger}
}

// Upload stores the multipart "file" field.
func (h *Document) Upload(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return model.NewValidationError("file", "file is required")
	}
	if err != nil {
		return fmt.Errorf("failed to read multipart form: %w", err)
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = defaultContentType
	}

	upload, err := h.documents.Upload(c.Request().Context(), userID, fh.Filename, contentType, f, fh.Size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, upload)
}
