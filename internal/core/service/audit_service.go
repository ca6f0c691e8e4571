package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/technotes/notes-system/internal/api/metrics"
	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that appends events to the
// audit trail. Invoked by the dispatcher workers.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists one authentication event.
func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("audit event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(string(event.Action)).Inc()

	s.log.Debug().
		Str("username", event.Username).
		Str("action", string(event.Action)).
		Msg("audit event recorded")

	return nil
}
