package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
)

// Logging logs each HTTP request once it has been answered.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle runs the error handler for a failed request before logging, so the
// logged status is the one the client received.
func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		rid, _ := c.Get(RequestIDKey).(string)
		args := []any{
			"request_id", rid,
			"method", req.Method,
			"path", req.URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_ip", c.RealIP(),
		}

		if c.Response().Status >= 500 {
			l.logger.Error("HTTP: request failed", args...)
		} else {
			l.logger.Info("HTTP: request completed", args...)
		}

		return nil
	}
}
