package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/technotes/notes-system/internal/core/domain"
)

const collectionAuditEvents = "auth_events"

// AuditRepository persists authentication events. Append-only: events
// are never updated or deleted by the application.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditEvents)}
}

type auditDoc struct {
	Username  string `bson:"username,omitempty"`
	Action    string `bson:"action"`
	RemoteIP  string `bson:"remote_ip"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDoc{
		Username:  event.Username,
		Action:    string(event.Action),
		RemoteIP:  event.RemoteIP,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
