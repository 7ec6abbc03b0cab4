package mocks

import (
	"context"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

// MockLocker implements domain.Locker interface for testing
type MockLocker struct {
	ObtainFunc func(ctx context.Context, key string) (func(context.Context) error, error)

	Keys     []string
	Released int
}

// NewMockLocker creates a locker that always grants the lock
func NewMockLocker() *MockLocker {
	return &MockLocker{}
}

// Obtain grants the lock unless ObtainFunc says otherwise
func (m *MockLocker) Obtain(ctx context.Context, key string) (func(context.Context) error, error) {
	m.Keys = append(m.Keys, key)
	if m.ObtainFunc != nil {
		return m.ObtainFunc(ctx, key)
	}
	return func(context.Context) error {
		m.Released++
		return nil
	}, nil
}

// Compile-time interface compliance verification
var _ domain.Locker = (*MockLocker)(nil)
