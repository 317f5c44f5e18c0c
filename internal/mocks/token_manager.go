package mocks

import "github.com/stretchr/testify/mock"

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (_m *TokenManager) GenerateAccessToken(userID string) (string, error) {
	ret := _m.Called(userID)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenManager) ParseAccessToken(token string) (string, error) {
	ret := _m.Called(token)
	return ret.String(0), ret.Error(1)
}

// NewTokenManager creates a TokenManager whose expectations are asserted on cleanup.
func NewTokenManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
