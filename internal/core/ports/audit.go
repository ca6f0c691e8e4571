package ports

import (
	"context"

	"github.com/technotes/notes-system/internal/core/domain"
)

// AuditRepository persists authentication events to the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditService processes a single audit event end to end. It is invoked
// by the dispatcher workers, never by request handlers directly.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}

// AuditRecorder is the fire-and-forget side consumed by the auth layer:
// Record enqueues and returns immediately, and a recording failure never
// surfaces to the client.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
