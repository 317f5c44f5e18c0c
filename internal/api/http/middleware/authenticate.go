package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
)

// Authenticator resolves an access token to the id of the user it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// Authenticate requires a bearer token and stores the caller's user id on the request context.
type Authenticate struct {
	auth           Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(auth Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		auth:           auth,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (a *Authenticate) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return fmt.Errorf("missing bearer token: %w", model.ErrUnauthenticated)
		}

		userID, err := a.auth.Authenticate(c.Request().Context(), token)
		if err != nil {
			a.logger.Debug("Authenticate: token rejected", "error", err)
			return fmt.Errorf("invalid access token: %w", model.ErrUnauthenticated)
		}

		ctx := a.contextManager.SetUserIDToContext(c.Request().Context(), userID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
