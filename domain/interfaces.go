package domain

import (
	"context"
	"time"
)

// UserRepository defines user and credential data access operations
type UserRepository interface {
	// Create persists the user together with its credential in one transaction
	Create(ctx context.Context, user *User, credential *Credential) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailWithCredential(ctx context.Context, email string) (*User, *Credential, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	// Update saves the profile columns of an existing user
	Update(ctx context.Context, user *User) error
	// Delete removes the user, its credential and its refresh tokens
	Delete(ctx context.Context, id uint) error
}

// RefreshTokenRepository defines refresh token data access operations
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	Delete(ctx context.Context, id uint) error
	DeleteAllByUser(ctx context.Context, userID uint) error
	// WithTx runs fn against a repository bound to a single transaction
	WithTx(ctx context.Context, fn func(repo RefreshTokenRepository) error) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	RegisterCoordinator(ctx context.Context, input RegisterInput) (*AuthResult, error)
	RegisterAdmin(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, userID uint) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
	UpdateCoordinator(ctx context.Context, userID uint, input UpdateCoordinatorInput) (*User, error)
	UpdateCoordinatorByEmail(ctx context.Context, email string, input UpdateCoordinatorInput) (*User, error)
	DeleteCoordinator(ctx context.Context, userID uint) error
	DeleteCoordinatorByEmail(ctx context.Context, email string) error
}

// RefreshTokenService defines refresh token lifecycle operations
type RefreshTokenService interface {
	Create(ctx context.Context, userID uint) (*RefreshToken, error)
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	VerifyExpiration(ctx context.Context, token *RefreshToken) (*RefreshToken, error)
	Rotate(ctx context.Context, old *RefreshToken) (*RefreshToken, error)
	DeleteAllByUser(ctx context.Context, userID uint) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines access token operations
type TokenService interface {
	Issue(subject string, extra map[string]interface{}) (string, error)
	Verify(token string) (*TokenClaims, error)
	IsValidFor(token, subject string) bool
	AccessTTL() time.Duration
}

// Locker serializes work on a key across processes
type Locker interface {
	// Obtain acquires the lock or returns ErrLockNotAcquired
	Obtain(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	CheckAnyPermission(roles []string, resource, action string) (bool, error)
	GetPolicies() ([][]string, error)
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
