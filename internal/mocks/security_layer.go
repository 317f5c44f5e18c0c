package mocks

import (
	"net"

	"github.com/stretchr/testify/mock"
)

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func (_m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	ret := _m.Called(protocol, addr)

	var l net.Listener
	if rf, ok := ret.Get(0).(func(string, string) net.Listener); ok {
		l = rf(protocol, addr)
	} else if ret.Get(0) != nil {
		l = ret.Get(0).(net.Listener)
	}

	return l, ret.Error(1)
}

// NewSecurityLayer creates a SecurityLayer whose expectations are asserted on cleanup.
func NewSecurityLayer(t interface {
	mock.TestingT
	Cleanup(func())
}) *SecurityLayer {
	m := &SecurityLayer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
