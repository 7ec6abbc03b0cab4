package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Authentication events
	UserRegistrationEvent   AuditEventType = "USER_REGISTERED"
	UserLoginEvent          AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent   AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent         AuditEventType = "USER_LOGOUT"
	UserUpdatedEvent        AuditEventType = "USER_UPDATED"
	UserDeletedEvent        AuditEventType = "USER_DELETED"
	TokenRefreshEvent       AuditEventType = "TOKEN_REFRESHED"
	TokenRefreshFailedEvent AuditEventType = "TOKEN_REFRESH_FAILED"

	// Authorization events
	AccessGrantedEvent AuditEventType = "ACCESS_GRANTED"
	AccessDeniedEvent  AuditEventType = "ACCESS_DENIED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uint                   `json:"user_id"`
	Email     string                 `json:"email,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	IPAddress string                 `json:"ip_address,omitempty"`
	UserAgent string                 `json:"user_agent,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger defines operations for audit logging
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent) error

	LogUserRegistration(ctx context.Context, userID uint, email string, roles []Role) error
	LogUserLogin(ctx context.Context, userID uint, email string, success bool, errMsg string) error
	LogTokenRefresh(ctx context.Context, userID uint, success bool, errMsg string) error
	LogUserLogout(ctx context.Context, userID uint) error
	LogUserUpdated(ctx context.Context, userID uint, fields []string) error
	LogUserDeleted(ctx context.Context, userID uint) error
	LogAccessAttempt(ctx context.Context, userID uint, resource, action string, granted bool, reason string) error
}

// ClientContext represents client information extracted from HTTP request
type ClientContext struct {
	IPAddress string
	UserAgent string
	RequestID string
}

type clientContextKey struct{}

// ContextWithClient returns a copy of ctx carrying the client information
func ContextWithClient(ctx context.Context, cc *ClientContext) context.Context {
	return context.WithValue(ctx, clientContextKey{}, cc)
}

// ClientFromContext returns the client information stored in ctx, if any
func ClientFromContext(ctx context.Context) *ClientContext {
	cc, _ := ctx.Value(clientContextKey{}).(*ClientContext)
	return cc
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithClientContext sets client context information
func (e *AuditEvent) WithClientContext(cc *ClientContext) *AuditEvent {
	if cc != nil {
		e.IPAddress = cc.IPAddress
		e.UserAgent = cc.UserAgent
		e.RequestID = cc.RequestID
	}
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
