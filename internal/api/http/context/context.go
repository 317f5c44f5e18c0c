package context

import (
	"context"
)

type userIDKey struct{}

// Manager stores the authenticated user id on the request context.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a child context carrying userID.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserIDFromContext returns the user id set by SetUserIDToContext. An empty id counts as absent.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
