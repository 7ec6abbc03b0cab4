package mocks

import (
	"context"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc                    func(ctx context.Context, user *domain.User, credential *domain.Credential) error
	ExistsByEmailFunc             func(ctx context.Context, email string) (bool, error)
	ExistsByPhoneFunc             func(ctx context.Context, phone string) (bool, error)
	FindByEmailFunc               func(ctx context.Context, email string) (*domain.User, error)
	FindByEmailWithCredentialFunc func(ctx context.Context, email string) (*domain.User, *domain.Credential, error)
	FindByIDFunc                  func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc                    func(ctx context.Context, user *domain.User) error
	DeleteFunc                    func(ctx context.Context, id uint) error

	CreateCalls int
	UpdateCalls int
	DeleteCalls int
	LastUpdated *domain.User
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create persists a user with its credential
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User, credential *domain.Credential) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user, credential)
	}
	// Default behavior: success with a fixed id
	user.ID = 1
	credential.UserID = 1
	return nil
}

// ExistsByEmail reports whether the email is taken
func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

// ExistsByPhone reports whether the phone number is taken
func (m *MockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if m.ExistsByPhoneFunc != nil {
		return m.ExistsByPhoneFunc(ctx, phone)
	}
	return false, nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByEmailWithCredential finds a user and its credential by email
func (m *MockUserRepository) FindByEmailWithCredential(ctx context.Context, email string) (*domain.User, *domain.Credential, error) {
	if m.FindByEmailWithCredentialFunc != nil {
		return m.FindByEmailWithCredentialFunc(ctx, email)
	}
	return nil, nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Update saves the profile of a user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.UpdateCalls++
	m.LastUpdated = user
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// Delete removes a user
func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
