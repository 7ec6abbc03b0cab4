package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

// MockRefreshTokenService implements domain.RefreshTokenService interface for testing
type MockRefreshTokenService struct {
	CreateFunc           func(ctx context.Context, userID uint) (*domain.RefreshToken, error)
	FindByTokenFunc      func(ctx context.Context, token string) (*domain.RefreshToken, error)
	VerifyExpirationFunc func(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error)
	RotateFunc           func(ctx context.Context, old *domain.RefreshToken) (*domain.RefreshToken, error)
	DeleteAllByUserFunc  func(ctx context.Context, userID uint) error

	CreateCalls          int
	RotateCalls          int
	DeleteAllByUserCalls int
}

// NewMockRefreshTokenService creates a new MockRefreshTokenService with default behaviors
func NewMockRefreshTokenService() *MockRefreshTokenService {
	return &MockRefreshTokenService{}
}

// Create issues a refresh token for the user
func (m *MockRefreshTokenService) Create(ctx context.Context, userID uint) (*domain.RefreshToken, error) {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID)
	}
	now := time.Now()
	return &domain.RefreshToken{
		ID:        uint(m.CreateCalls),
		Token:     fmt.Sprintf("refresh_token_%d_%d", userID, m.CreateCalls),
		UserID:    userID,
		CreatedAt: now,
		ExpiryAt:  now.Add(24 * time.Hour),
	}, nil
}

// FindByToken looks a refresh token up
func (m *MockRefreshTokenService) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, domain.ErrRefreshTokenNotFound
}

// VerifyExpiration checks the token expiry
func (m *MockRefreshTokenService) VerifyExpiration(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error) {
	if m.VerifyExpirationFunc != nil {
		return m.VerifyExpirationFunc(ctx, token)
	}
	if token.IsExpired(time.Now()) {
		return nil, domain.ErrRefreshTokenExpired
	}
	return token, nil
}

// Rotate replaces the token with a new one
func (m *MockRefreshTokenService) Rotate(ctx context.Context, old *domain.RefreshToken) (*domain.RefreshToken, error) {
	m.RotateCalls++
	if m.RotateFunc != nil {
		return m.RotateFunc(ctx, old)
	}
	if _, err := m.VerifyExpiration(ctx, old); err != nil {
		return nil, err
	}
	now := time.Now()
	return &domain.RefreshToken{
		ID:        old.ID + 1,
		Token:     fmt.Sprintf("rotated_%s", old.Token),
		UserID:    old.UserID,
		CreatedAt: now,
		ExpiryAt:  now.Add(24 * time.Hour),
	}, nil
}

// DeleteAllByUser revokes every token of the user
func (m *MockRefreshTokenService) DeleteAllByUser(ctx context.Context, userID uint) error {
	m.DeleteAllByUserCalls++
	if m.DeleteAllByUserFunc != nil {
		return m.DeleteAllByUserFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.RefreshTokenService = (*MockRefreshTokenService)(nil)
