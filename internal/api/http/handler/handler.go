// Package handler holds the REST handlers. Handlers return errors and leave
// the status mapping to ErrorHandler.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/identifier"
	"github.com/dtroode/healthnest-server/internal/model"
)

// MessageResponse acknowledges a delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// readBody binds the request body into a JSON object. An empty body is an empty object.
// Bodies that are not JSON objects fail validation on "body"; an unsupported
// content type is left as echo's 415.
func readBody(c echo.Context) (map[string]any, error) {
	raw := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		var herr *echo.HTTPError
		if errors.As(err, &herr) && herr.Code != http.StatusBadRequest {
			return nil, err
		}
		return nil, model.NewValidationError("body", "request body must be a JSON object")
	}
	if raw == nil {
		return nil, model.NewValidationError("body", "request body must be a JSON object")
	}
	return raw, nil
}

// pathID returns the :id path parameter, rejecting malformed identifiers for entity.
func pathID(c echo.Context, entity string) (string, error) {
	id := c.Param("id")
	if !identifier.IsValid(id) {
		return "", model.InvalidID(entity)
	}
	return id, nil
}

// queryID returns a required identifier from the query string.
func queryID(c echo.Context, name, entity string) (string, error) {
	id := c.QueryParam(name)
	if id == "" {
		return "", model.NewValidationError(name, "%s is required", name)
	}
	if !identifier.IsValid(id) {
		return "", model.InvalidID(entity)
	}
	return id, nil
}

func currentUser(c echo.Context, contextManager model.ContextManager) (string, error) {
	userID, ok := contextManager.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return "", model.ErrUnauthenticated
	}
	return userID, nil
}

func deleted(c echo.Context, entity string) error {
	return c.JSON(http.StatusOK, MessageResponse{
		Message: strings.ToUpper(entity[:1]) + entity[1:] + " deleted successfully",
	})
}
