package mocks

import (
	"context"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc            func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)
	RegisterCoordinatorFunc func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)
	RegisterAdminFunc       func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)
	AuthenticateFunc        func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshFunc             func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc              func(ctx context.Context, userID uint) error
	GetUserProfileFunc      func(ctx context.Context, userID uint) (*domain.User, error)

	UpdateCoordinatorFunc        func(ctx context.Context, userID uint, input domain.UpdateCoordinatorInput) (*domain.User, error)
	UpdateCoordinatorByEmailFunc func(ctx context.Context, email string, input domain.UpdateCoordinatorInput) (*domain.User, error)
	DeleteCoordinatorFunc        func(ctx context.Context, userID uint) error
	DeleteCoordinatorByEmailFunc func(ctx context.Context, email string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func mockResult(email string, admin, coordinator bool) *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:            1,
			Email:         email,
			IsAdmin:       admin,
			IsCoordinator: coordinator,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		},
		AccessToken:  "mock_access_token",
		RefreshToken: "mock_refresh_token",
		ExpiresIn:    900,
	}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return mockResult(input.Email, false, false), nil
}

// RegisterCoordinator registers a new coordinator
func (m *MockAuthService) RegisterCoordinator(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	if m.RegisterCoordinatorFunc != nil {
		return m.RegisterCoordinatorFunc(ctx, input)
	}
	return mockResult(input.Email, false, true), nil
}

// RegisterAdmin registers a new admin
func (m *MockAuthService) RegisterAdmin(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	if m.RegisterAdminFunc != nil {
		return m.RegisterAdminFunc(ctx, input)
	}
	return mockResult(input.Email, true, false), nil
}

// Authenticate logs a user in
func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, email, password)
	}
	return mockResult(email, false, false), nil
}

// Refresh exchanges a refresh token for a new pair
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return mockResult("test@example.com", false, false), nil
}

// Logout revokes the user's refresh tokens
func (m *MockAuthService) Logout(ctx context.Context, userID uint) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID)
	}
	return nil
}

// GetUserProfile returns a user profile
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return &domain.User{ID: userID, Email: "test@example.com"}, nil
}

// UpdateCoordinator patches a coordinator profile by id
func (m *MockAuthService) UpdateCoordinator(ctx context.Context, userID uint, input domain.UpdateCoordinatorInput) (*domain.User, error) {
	if m.UpdateCoordinatorFunc != nil {
		return m.UpdateCoordinatorFunc(ctx, userID, input)
	}
	user := &domain.User{ID: userID, Email: "coordinator@example.com", IsCoordinator: true}
	input.Apply(user)
	return user, nil
}

// UpdateCoordinatorByEmail patches a coordinator profile by email
func (m *MockAuthService) UpdateCoordinatorByEmail(ctx context.Context, email string, input domain.UpdateCoordinatorInput) (*domain.User, error) {
	if m.UpdateCoordinatorByEmailFunc != nil {
		return m.UpdateCoordinatorByEmailFunc(ctx, email, input)
	}
	user := &domain.User{ID: 1, Email: email, IsCoordinator: true}
	input.Apply(user)
	return user, nil
}

// DeleteCoordinator removes a coordinator account
func (m *MockAuthService) DeleteCoordinator(ctx context.Context, userID uint) error {
	if m.DeleteCoordinatorFunc != nil {
		return m.DeleteCoordinatorFunc(ctx, userID)
	}
	return nil
}

// DeleteCoordinatorByEmail removes a coordinator account by email
func (m *MockAuthService) DeleteCoordinatorByEmail(ctx context.Context, email string) error {
	if m.DeleteCoordinatorByEmailFunc != nil {
		return m.DeleteCoordinatorByEmailFunc(ctx, email)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
