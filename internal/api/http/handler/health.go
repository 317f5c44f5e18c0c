package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
)

// StatusResponse is the body of a passing health check.
type StatusResponse struct {
	Status string `json:"status"`
}

// Health reports whether the document store answers.
type Health struct {
	pinger model.Pinger
	logger *logger.Logger
}

func NewHealth(pinger model.Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

// Check pings the document store.
func (h *Health) Check(c echo.Context) error {
	if err := h.pinger.Ping(c.Request().Context()); err != nil {
		h.logger.Warn("Health: store ping failed", "error", err)
		return fmt.Errorf("store ping failed: %w", model.ErrUpstreamUnavailable)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}
