package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	"github.com/openbooks/bookkeeping_engine/internal/models"
	"github.com/openbooks/bookkeeping_engine/internal/utils/mapping"
)

const eventColumns = `event_id, action, entity_id, details, performed_by, occurred_at`

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepository
var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// SaveEvent persists one audit event. Rows are append-only.
func (r *PgxAuditRepository) SaveEvent(ctx context.Context, event domain.AuditEvent) error {
	m := mapping.ToModelAuditEvent(event)
	query := `
		INSERT INTO audit_events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.EventID, m.Action, m.EntityID, m.Details, m.PerformedBy, m.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to save audit event %s: %w", m.EventID, err)
	}
	return nil
}

// ListEventsByEntity retrieves the audit history of one entity, newest first.
func (r *PgxAuditRepository) ListEventsByEntity(ctx context.Context, entityID string, limit int) ([]domain.AuditEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM audit_events WHERE entity_id = $1 ORDER BY occurred_at DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events for %s: %w", entityID, err)
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var m models.AuditEvent
		if err := rows.Scan(&m.EventID, &m.Action, &m.EntityID, &m.Details, &m.PerformedBy, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event row: %w", err)
		}
		events = append(events, mapping.ToDomainAuditEvent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit event rows: %w", err)
	}
	return events, nil
}
