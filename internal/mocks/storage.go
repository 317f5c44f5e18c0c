package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// Storage is a mock of model.Storage.
type Storage struct {
	mock.Mock
}

func (_m *Storage) Upload(ctx context.Context, key, contentType string, reader io.Reader, size int64) (string, error) {
	ret := _m.Called(ctx, key, contentType, reader, size)
	return ret.String(0), ret.Error(1)
}

// NewStorage creates a Storage whose expectations are asserted on cleanup.
func NewStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *Storage {
	m := &Storage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
