package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/mocks"
)

// authDeps bundles the mocks behind an AuthServiceImpl under test
type authDeps struct {
	userRepo    *mocks.MockUserRepository
	refreshSvc  *mocks.MockRefreshTokenService
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	locker      *mocks.MockLocker
	audit       *mocks.MockAuditLogger
}

func newAuthDeps() *authDeps {
	return &authDeps{
		userRepo:    mocks.NewMockUserRepository(),
		refreshSvc:  mocks.NewMockRefreshTokenService(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		locker:      mocks.NewMockLocker(),
		audit:       mocks.NewMockAuditLogger(),
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T, deps *authDeps) *AuthServiceImpl {
	t.Helper()
	return NewAuthService(deps.userRepo, deps.refreshSvc, deps.passwordSvc, deps.tokenSvc, deps.locker, deps.audit, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:          1,
		Firstname:   "Alice",
		Lastname:    "Smith",
		PhoneNumber: "+15551230000",
		Email:       "alice@example.com",
		CreatedAt:   time.Now().Add(-24 * time.Hour),
		UpdatedAt:   time.Now().Add(-1 * time.Hour),
	}
}

// createCoordinatorUser creates a coordinator entity for testing
func createCoordinatorUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.ID = 3
	user.Email = "coordinator@example.com"
	user.PhoneNumber = "+8888888888"
	user.IsCoordinator = true
	return user
}

func validRegisterInput(t *testing.T) domain.RegisterInput {
	t.Helper()

	return domain.RegisterInput{
		Firstname:   "Alice",
		Lastname:    "Smith",
		PhoneNumber: "+15551230000",
		Email:       "alice@example.com",
		Password:    "Secr3t!",
	}
}

// createValidRefreshToken creates a stored refresh token that has not expired
func createValidRefreshToken(t *testing.T, userID uint) *domain.RefreshToken {
	t.Helper()

	return &domain.RefreshToken{
		ID:        10,
		Token:     "9c1d7a52-2f35-4c8e-8d4b-2e6f0a1b3c4d",
		UserID:    userID,
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiryAt:  time.Now().Add(time.Hour),
	}
}

// createTestContext creates a context with timeout for testing
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
