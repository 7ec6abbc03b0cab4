package mocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// Default tokens have the form "access_token:<subject>:<n>".
type MockTokenService struct {
	IssueFunc      func(subject string, extra map[string]interface{}) (string, error)
	VerifyFunc     func(token string) (*domain.TokenClaims, error)
	IsValidForFunc func(token, subject string) bool
	TTL            time.Duration

	IssueCalls  int
	LastExtra   map[string]interface{}
	LastSubject string
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{TTL: 15 * time.Minute}
}

// Issue creates an access token for subject
func (m *MockTokenService) Issue(subject string, extra map[string]interface{}) (string, error) {
	m.IssueCalls++
	m.LastSubject = subject
	m.LastExtra = extra
	if m.IssueFunc != nil {
		return m.IssueFunc(subject, extra)
	}
	return fmt.Sprintf("access_token:%s:%d", subject, m.IssueCalls), nil
}

// Verify parses a token produced by the default Issue
func (m *MockTokenService) Verify(token string) (*domain.TokenClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "access_token" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		Subject:   parts[1],
		IssuedAt:  now,
		ExpiresAt: now + int64(m.TTL.Seconds()),
	}, nil
}

// IsValidFor checks the token subject
func (m *MockTokenService) IsValidFor(token, subject string) bool {
	if m.IsValidForFunc != nil {
		return m.IsValidForFunc(token, subject)
	}
	claims, err := m.Verify(token)
	return err == nil && claims.Subject == subject
}

// AccessTTL returns the configured lifetime
func (m *MockTokenService) AccessTTL() time.Duration {
	return m.TTL
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
