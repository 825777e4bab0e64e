package repositories

import (
	"context"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
)

// AuditRepository defines operations for the append-only audit trail
type AuditRepository interface {
	// SaveEvent persists one audit event. Events are never updated or deleted.
	SaveEvent(ctx context.Context, event domain.AuditEvent) error

	// ListEventsByEntity retrieves the audit history of a single entity,
	// newest first.
	ListEventsByEntity(ctx context.Context, entityID string, limit int) ([]domain.AuditEvent, error)
}
