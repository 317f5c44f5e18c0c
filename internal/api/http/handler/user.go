package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/validation"
)

// UserService is the account surface behind /auth and /users.
type UserService interface {
	Signup(ctx context.Context, in model.SignupInput) (model.AuthResult, error)
	Login(ctx context.Context, in model.LoginInput) (model.AuthResult, error)
	Me(ctx context.Context, userID string) (model.User, error)
	UpdateMe(ctx context.Context, userID string, up model.UserUpdate) (model.User, error)
	CompleteOnboarding(ctx context.Context, userID string) (model.User, error)
}

// User serves signup, login and the caller's own profile.
type User struct {
	users          UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewUser(users UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{users: users, contextManager: contextManager, logger: logger}
}

func (h *User) Signup(c echo.Context) error {
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	in, err := validation.ParseSignup(raw)
	if err != nil {
		return err
	}

	res, err := h.users.Signup(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *User) Login(c echo.Context) error {
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	in, err := validation.ParseLogin(raw)
	if err != nil {
		return err
	}

	res, err := h.users.Login(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *User) Me(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}

	user, err := h.users.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *User) UpdateMe(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	up, err := validation.ParseUserUpdate(raw)
	if err != nil {
		return err
	}

	user, err := h.users.UpdateMe(c.Request().Context(), userID, up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *User) CompleteOnboarding(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}

	user, err := h.users.CompleteOnboarding(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
