package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()

	ctx := m.SetUserIDToContext(context.Background(), "64b7f0c2a1b2c3d4e5f60718")
	userID, ok := m.GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", userID)
}

func TestManager_Missing(t *testing.T) {
	m := NewManager()

	_, ok := m.GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = m.GetUserIDFromContext(m.SetUserIDToContext(context.Background(), ""))
	assert.False(t, ok)

	_, ok = m.GetUserIDFromContext(context.WithValue(context.Background(), "userID", "64b7f0c2a1b2c3d4e5f60718"))
	assert.False(t, ok)
}
