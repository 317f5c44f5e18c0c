package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/healthnest-server/internal/identifier"
	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
)

// User handles credentials and the signed-in user's own profile.
type User struct {
	users        model.EntityStore[model.User]
	tokens       model.TokenManager
	passwordCost int
	logger       *logger.Logger
}

// NewUser creates the account service. cost is the bcrypt work factor.
func NewUser(
	users model.EntityStore[model.User],
	tokens model.TokenManager,
	passwordCost int,
	logger *logger.Logger,
) *User {
	return &User{
		users:        users,
		tokens:       tokens,
		passwordCost: passwordCost,
		logger:       logger,
	}
}

// Signup registers a credentials user and issues an access token.
func (s *User) Signup(ctx context.Context, in model.SignupInput) (model.AuthResult, error) {
	s.logger.Debug("User service: signing up", "email", in.Email)

	taken, err := s.emailTaken(ctx, in.Email, "")
	if err != nil {
		return model.AuthResult{}, err
	}
	if taken {
		s.logger.Info("User service: email already registered", "email", in.Email)
		return model.AuthResult{}, model.Duplicate(model.EntityUser)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.passwordCost)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Insert(ctx, model.User{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Emails:        []string{in.Email},
		MobileNumbers: []model.MobileNumber{},
		Preferences:   map[string]any{},
		AuthProvider:  model.AuthProviderCredentials,
		Password:      string(hash),
	})
	if err != nil {
		s.logger.Error("User service: failed to create user",
			"email", in.Email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User service: user created", "user_id", user.ID)

	return model.AuthResult{User: user.Public(), AccessToken: token}, nil
}

// Login verifies the password. Unknown emails and wrong passwords are indistinguishable.
func (s *User) Login(ctx context.Context, in model.LoginInput) (model.AuthResult, error) {
	users, err := s.users.Find(ctx, model.Filter{model.Contains(model.FieldEmails, in.Email)}, model.Sort{})
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to find user by email: %w", err)
	}
	if len(users) == 0 {
		return model.AuthResult{}, model.ErrUnauthenticated
	}
	user := users[0]

	if user.Password == "" {
		return model.AuthResult{}, model.ErrUnauthenticated
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		s.logger.Info("User service: wrong password", "user_id", user.ID)
		return model.AuthResult{}, model.ErrUnauthenticated
	}
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to compare password: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return model.AuthResult{User: user.Public(), AccessToken: token}, nil
}

// Authenticate turns a bearer token into a user id.
func (s *User) Authenticate(_ context.Context, token string) (string, error) {
	userID, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		s.logger.Debug("User service: rejected token", "error", err.Error())
		return "", model.ErrUnauthenticated
	}
	if !identifier.IsValid(userID) {
		return "", model.ErrUnauthenticated
	}
	return userID, nil
}

// Me returns the requesting user without the password hash.
func (s *User) Me(ctx context.Context, userID string) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.NotFound(model.EntityUser)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user.Public(), nil
}

// UpdateMe merges the supplied profile fields. Emails already used by another user are rejected.
func (s *User) UpdateMe(ctx context.Context, userID string, up model.UserUpdate) (model.User, error) {
	if up.Emails != nil {
		for _, email := range *up.Emails {
			taken, err := s.emailTaken(ctx, email, userID)
			if err != nil {
				return model.User{}, err
			}
			if taken {
				return model.User{}, model.Duplicate(model.EntityUser)
			}
		}
	}

	return s.update(ctx, userID, up.Fields())
}

func (s *User) CompleteOnboarding(ctx context.Context, userID string) (model.User, error) {
	return s.update(ctx, userID, model.Fields{model.FieldOnboardingCompleted: true})
}

func (s *User) update(ctx context.Context, userID string, fields model.Fields) (model.User, error) {
	user, err := s.users.Update(ctx, userID, fields)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.NotFound(model.EntityUser)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return user.Public(), nil
}

func (s *User) emailTaken(ctx context.Context, email, exceptUserID string) (bool, error) {
	users, err := s.users.Find(ctx, model.Filter{model.Contains(model.FieldEmails, email)}, model.Sort{})
	if err != nil {
		return false, fmt.Errorf("failed to find user by email: %w", err)
	}
	for _, u := range users {
		if u.ID != exceptUserID {
			return true, nil
		}
	}
	return false, nil
}
