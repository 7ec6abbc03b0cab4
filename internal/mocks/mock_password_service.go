package mocks

import (
	"strings"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

const fakeHashPrefix = "fakehash$"

// MockPasswordService is a reversible stand-in for the bcrypt hasher. Its
// hashes are prefixed so tests can tell them from plaintext.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hash, password string) bool

	HashCalls int
}

var _ domain.PasswordService = (*MockPasswordService)(nil)

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	m.HashCalls++
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return fakeHashPrefix + password, nil
}

func (m *MockPasswordService) Verify(hash, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hash, password)
	}
	plain, ok := strings.CutPrefix(hash, fakeHashPrefix)
	return ok && plain == password
}
