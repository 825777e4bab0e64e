package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	"github.com/openbooks/bookkeeping_engine/internal/models"
	"github.com/openbooks/bookkeeping_engine/internal/utils/mapping"
)

const stepColumns = `period_id, step, name, status, note, updated_at`

type PgxCycleRepository struct {
	BaseRepository
}

// newPgxCycleRepository creates a new repository for cycle checklist data.
func newPgxCycleRepository(pool *pgxpool.Pool) portsrepo.CycleRepositoryFacade {
	return &PgxCycleRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxCycleRepository implements portsrepo.CycleRepositoryFacade
var _ portsrepo.CycleRepositoryFacade = (*PgxCycleRepository)(nil)

// ListSteps retrieves the cycle steps for a period, ordered by step number.
func (r *PgxCycleRepository) ListSteps(ctx context.Context, periodID string) ([]domain.CycleStep, error) {
	query := `SELECT ` + stepColumns + ` FROM cycle_steps WHERE period_id = $1 ORDER BY step;`

	rows, err := r.Pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycle steps for period %s: %w", periodID, err)
	}
	defer rows.Close()

	var steps []domain.CycleStep
	for rows.Next() {
		var m models.CycleStep
		if err := rows.Scan(&m.PeriodID, &m.Step, &m.Name, &m.Status, &m.Note, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cycle step row: %w", err)
		}
		steps = append(steps, mapping.ToDomainCycleStep(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cycle step rows: %w", err)
	}
	return steps, nil
}

// InitSteps creates the pending step rows for a newly opened period.
func (r *PgxCycleRepository) InitSteps(ctx context.Context, periodID string, steps []domain.CycleStep) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO cycle_steps (` + stepColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, step := range steps {
		m := mapping.ToModelCycleStep(step)
		if _, err := tx.Exec(ctx, query, periodID, m.Step, m.Name, m.Status, m.Note, m.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert cycle step %d for period %s: %w", m.Step, periodID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateStep sets the status and note of one step.
func (r *PgxCycleRepository) UpdateStep(ctx context.Context, step domain.CycleStep) error {
	m := mapping.ToModelCycleStep(step)
	query := `
		UPDATE cycle_steps
		SET status = $3, note = $4, updated_at = $5
		WHERE period_id = $1 AND step = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, m.PeriodID, m.Step, m.Status, m.Note, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update cycle step %d for period %s: %w", m.Step, m.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
