// Package mocks provides testify mocks for the catalog collaborators.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/donaldgifford/offer-catalog/internal/catalog"
)

// MockRequester is a mock implementation of catalog.Requester.
type MockRequester struct {
	mock.Mock
}

// NewMockRequester creates a MockRequester that asserts its expectations on cleanup.
func NewMockRequester(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockRequester {
	m := &MockRequester{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get provides a mock function with given fields: ctx, url, params.
func (m *MockRequester) Get(ctx context.Context, url string, params catalog.Params) (catalog.Node, error) {
	ret := m.Called(ctx, url, params)

	var n catalog.Node
	if fn, ok := ret.Get(0).(func(context.Context, string, catalog.Params) catalog.Node); ok {
		n = fn(ctx, url, params)
	} else if ret.Get(0) != nil {
		n = ret.Get(0).(catalog.Node)
	}

	return n, ret.Error(1)
}

// MockTokenSource is a mock implementation of catalog.TokenSource.
type MockTokenSource struct {
	mock.Mock
}

// NewMockTokenSource creates a MockTokenSource that asserts its expectations on cleanup.
func NewMockTokenSource(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockTokenSource {
	m := &MockTokenSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// UserToken provides a mock function with no fields.
func (m *MockTokenSource) UserToken() (string, bool) {
	ret := m.Called()
	return ret.String(0), ret.Bool(1)
}

// FetchUserToken provides a mock function with given fields: ctx.
func (m *MockTokenSource) FetchUserToken(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	return ret.String(0), ret.Error(1)
}
