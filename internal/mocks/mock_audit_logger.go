package mocks

import (
	"context"
	"sync"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

// MockAuditLogger implements domain.AuditLogger and records every event
type MockAuditLogger struct {
	LogEventFunc func(ctx context.Context, event *domain.AuditEvent) error

	mu     sync.Mutex
	Events []*domain.AuditEvent
}

// NewMockAuditLogger creates a recording audit logger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records the event
func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()
	if m.LogEventFunc != nil {
		return m.LogEventFunc(ctx, event)
	}
	return nil
}

func (m *MockAuditLogger) LogUserRegistration(ctx context.Context, userID uint, email string, roles []domain.Role) error {
	return m.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, userID).WithEmail(email).WithMetadata("roles", roles))
}

func (m *MockAuditLogger) LogUserLogin(ctx context.Context, userID uint, email string, success bool, errMsg string) error {
	event := domain.NewAuditEvent(domain.UserLoginEvent, userID).WithEmail(email)
	if !success {
		event.EventType = domain.UserLoginFailureEvent
		event.Success = false
		event.ErrorMsg = errMsg
	}
	return m.LogEvent(ctx, event)
}

func (m *MockAuditLogger) LogTokenRefresh(ctx context.Context, userID uint, success bool, errMsg string) error {
	event := domain.NewAuditEvent(domain.TokenRefreshEvent, userID)
	if !success {
		event.EventType = domain.TokenRefreshFailedEvent
		event.Success = false
		event.ErrorMsg = errMsg
	}
	return m.LogEvent(ctx, event)
}

func (m *MockAuditLogger) LogUserLogout(ctx context.Context, userID uint) error {
	return m.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, userID))
}

func (m *MockAuditLogger) LogUserUpdated(ctx context.Context, userID uint, fields []string) error {
	return m.LogEvent(ctx, domain.NewAuditEvent(domain.UserUpdatedEvent, userID).WithMetadata("fields", fields))
}

func (m *MockAuditLogger) LogUserDeleted(ctx context.Context, userID uint) error {
	return m.LogEvent(ctx, domain.NewAuditEvent(domain.UserDeletedEvent, userID))
}

func (m *MockAuditLogger) LogAccessAttempt(ctx context.Context, userID uint, resource, action string, granted bool, reason string) error {
	eventType := domain.AccessGrantedEvent
	if !granted {
		eventType = domain.AccessDeniedEvent
	}
	event := domain.NewAuditEvent(eventType, userID).
		WithMetadata("resource", resource).
		WithMetadata("action", action)
	event.Success = granted
	event.ErrorMsg = reason
	return m.LogEvent(ctx, event)
}

// Types returns the recorded event types in order (test helper)
func (m *MockAuditLogger) Types() []domain.AuditEventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditEventType, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.EventType
	}
	return out
}

// Compile-time interface compliance verification
var _ domain.AuditLogger = (*MockAuditLogger)(nil)
