package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
)

// Error codes carried in the error envelope.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidIdentifier   = "INVALID_IDENTIFIER"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeDuplicateEntity     = "DUPLICATE_ENTITY"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeInternal            = "INTERNAL"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ErrorHandler writes the envelope for any error returned by a handler or middleware.
func ErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		handleError(c, err, logger)
	}
}

func handleError(c echo.Context, err error, logger *logger.Logger) {
	if c.Response().Committed {
		return
	}

	status, body := classify(err)
	if status == http.StatusInternalServerError {
		logger.Error("HTTP: internal error",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, body)
	}
	if werr != nil {
		logger.Error("HTTP: failed to write error response", "error", werr)
	}
}

// classify maps an error to its status code and a single client-safe line.
func classify(err error) (int, ErrorResponse) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, ErrorResponse{Error: verr.Message, Code: CodeValidation}
	}

	var herr *echo.HTTPError
	if errors.As(err, &herr) {
		return herr.Code, ErrorResponse{
			Error: fmt.Sprint(herr.Message),
			Code:  strings.ToUpper(strings.ReplaceAll(http.StatusText(herr.Code), " ", "_")),
		}
	}

	kinds := []struct {
		kind    error
		status  int
		code    string
		message string
	}{
		{model.ErrInvalidIdentifier, http.StatusBadRequest, CodeInvalidIdentifier, "invalid identifier"},
		{model.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated, "Unauthorized"},
		{model.ErrForbidden, http.StatusForbidden, CodeForbidden, "forbidden"},
		{model.ErrNotFound, http.StatusNotFound, CodeNotFound, "not found"},
		{model.ErrDuplicateEntity, http.StatusConflict, CodeDuplicateEntity, "already exists"},
		{model.ErrUpstreamUnavailable, http.StatusServiceUnavailable, CodeUpstreamUnavailable, "upstream service unavailable"},
	}
	for _, k := range kinds {
		if !errors.Is(err, k.kind) {
			continue
		}
		message := k.message
		var eerr *model.EntityError
		if errors.As(err, &eerr) {
			message = eerr.Error()
		}
		return k.status, ErrorResponse{Error: message, Code: k.code}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeInternal}
}
