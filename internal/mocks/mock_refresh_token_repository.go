package mocks

import (
	"context"
	"sync"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository for testing.
// Without overrides it keeps tokens in memory; WithTx applies changes only when fn succeeds.
type MockRefreshTokenRepository struct {
	CreateFunc          func(ctx context.Context, token *domain.RefreshToken) error
	FindByTokenFunc     func(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteFunc          func(ctx context.Context, id uint) error
	DeleteAllByUserFunc func(ctx context.Context, userID uint) error

	mu     sync.Mutex
	tokens map[uint]domain.RefreshToken
	nextID uint
}

// NewMockRefreshTokenRepository creates an empty in-memory repository
func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{tokens: make(map[uint]domain.RefreshToken)}
}

// Create stores a token
func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	token.ID = m.nextID
	m.tokens[token.ID] = *token
	return nil
}

// FindByToken looks a token up by value
func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		if t.Token == token {
			found := t
			return &found, nil
		}
	}
	return nil, domain.ErrRefreshTokenNotFound
}

// Delete removes a token by id
func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[id]; !ok {
		return domain.ErrRefreshTokenNotFound
	}
	delete(m.tokens, id)
	return nil
}

// DeleteAllByUser removes every token of a user
func (m *MockRefreshTokenRepository) DeleteAllByUser(ctx context.Context, userID uint) error {
	if m.DeleteAllByUserFunc != nil {
		return m.DeleteAllByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, id)
		}
	}
	return nil
}

// WithTx runs fn and restores the previous state when it fails
func (m *MockRefreshTokenRepository) WithTx(ctx context.Context, fn func(repo domain.RefreshTokenRepository) error) error {
	m.mu.Lock()
	snapshot := make(map[uint]domain.RefreshToken, len(m.tokens))
	for id, t := range m.tokens {
		snapshot[id] = t
	}
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.tokens = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

// ForUser returns the stored tokens of a user (test helper)
func (m *MockRefreshTokenRepository) ForUser(userID uint) []domain.RefreshToken {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RefreshToken
	for _, t := range m.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// Put stores a token as is (test helper)
func (m *MockRefreshTokenRepository) Put(token domain.RefreshToken) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token.ID == 0 {
		m.nextID++
		token.ID = m.nextID
	} else if token.ID > m.nextID {
		m.nextID = token.ID
	}
	m.tokens[token.ID] = token
}

// Compile-time interface compliance verification
var _ domain.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)
