package audit

import (
	"context"
	"log/slog"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

// Sink receives fully built audit events
type Sink interface {
	LogEvent(ctx context.Context, event *domain.AuditEvent) error
}

// Events builds the typed audit events of domain.AuditLogger on top of a Sink
type Events struct {
	Sink Sink
}

func (e Events) LogUserRegistration(ctx context.Context, userID uint, email string, roles []domain.Role) error {
	return e.Sink.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, userID).
		WithEmail(email).
		WithMetadata("roles", roles))
}

func (e Events) LogUserLogin(ctx context.Context, userID uint, email string, success bool, errMsg string) error {
	event := domain.NewAuditEvent(domain.UserLoginEvent, userID).WithEmail(email)
	if !success {
		event.EventType = domain.UserLoginFailureEvent
		event.Success = false
		event.ErrorMsg = errMsg
	}
	return e.Sink.LogEvent(ctx, event)
}

func (e Events) LogTokenRefresh(ctx context.Context, userID uint, success bool, errMsg string) error {
	event := domain.NewAuditEvent(domain.TokenRefreshEvent, userID)
	if !success {
		event.EventType = domain.TokenRefreshFailedEvent
		event.Success = false
		event.ErrorMsg = errMsg
	}
	return e.Sink.LogEvent(ctx, event)
}

func (e Events) LogUserLogout(ctx context.Context, userID uint) error {
	return e.Sink.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, userID))
}

func (e Events) LogUserUpdated(ctx context.Context, userID uint, fields []string) error {
	return e.Sink.LogEvent(ctx, domain.NewAuditEvent(domain.UserUpdatedEvent, userID).WithMetadata("fields", fields))
}

func (e Events) LogUserDeleted(ctx context.Context, userID uint) error {
	return e.Sink.LogEvent(ctx, domain.NewAuditEvent(domain.UserDeletedEvent, userID))
}

func (e Events) LogAccessAttempt(ctx context.Context, userID uint, resource, action string, granted bool, reason string) error {
	eventType := domain.AccessGrantedEvent
	if !granted {
		eventType = domain.AccessDeniedEvent
	}
	event := domain.NewAuditEvent(eventType, userID).
		WithMetadata("resource", resource).
		WithMetadata("action", action)
	event.Success = granted
	event.ErrorMsg = reason
	return e.Sink.LogEvent(ctx, event)
}

// Logger writes audit events as structured slog records under the "audit" group
type Logger struct {
	Events
	log *slog.Logger
}

// NewLogger creates an audit logger on top of log
func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	l := &Logger{log: log.With("component", "audit")}
	l.Events = Events{Sink: l}
	return l
}

// LogEvent implements domain.AuditLogger. Client details missing from the
// event are taken from ctx.
func (l *Logger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	if event.RequestID == "" {
		event.WithClientContext(domain.ClientFromContext(ctx))
	}

	attrs := []any{
		slog.String("event_type", string(event.EventType)),
		slog.Uint64("user_id", uint64(event.UserID)),
		slog.Bool("success", event.Success),
		slog.Time("timestamp", event.Timestamp),
	}
	if event.Email != "" {
		attrs = append(attrs, slog.String("email", event.Email))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.UserAgent != "" {
		attrs = append(attrs, slog.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", event.RequestID))
	}
	if event.ErrorMsg != "" {
		attrs = append(attrs, slog.String("error", event.ErrorMsg))
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", event.Metadata))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	l.log.Log(ctx, level, "audit event", slog.Group("audit", attrs...))
	return nil
}

var _ domain.AuditLogger = (*Logger)(nil)
