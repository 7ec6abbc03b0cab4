package auth

import (
	"fmt"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceImpl is the bcrypt credential hasher. Salting is done by
// bcrypt so equal passwords never share a hash.
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a hasher with the given work factor. A cost
// outside the bcrypt range falls back to bcrypt.DefaultCost.
func NewPasswordService(cost int) *PasswordServiceImpl {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash returns the bcrypt encoding of password
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	if len(password) > domain.MaxPasswordBytes {
		return "", domain.NewValidationError("password", fmt.Sprintf("password max length is %d bytes", domain.MaxPasswordBytes))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Malformed hashes never match.
func (p *PasswordServiceImpl) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
