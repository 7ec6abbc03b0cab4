package metrics

import (
	"context"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/infrastructure/audit"
)

// AuditLogger counts audit events before handing them to the next logger
type AuditLogger struct {
	audit.Events
	next    domain.AuditLogger
	metrics *Metrics
}

// InstrumentAudit wraps next so every event also increments auth_events_total
func InstrumentAudit(next domain.AuditLogger, m *Metrics) *AuditLogger {
	a := &AuditLogger{next: next, metrics: m}
	a.Events = audit.Events{Sink: a}
	return a
}

// LogEvent implements domain.AuditLogger
func (a *AuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	outcome := "success"
	if !event.Success {
		outcome = "failure"
	}
	a.metrics.AuthEventsTotal.WithLabelValues(string(event.EventType), outcome).Inc()
	return a.next.LogEvent(ctx, event)
}

var _ domain.AuditLogger = (*AuditLogger)(nil)
