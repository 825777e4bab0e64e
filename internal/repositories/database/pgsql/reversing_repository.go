package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	"github.com/openbooks/bookkeeping_engine/internal/models"
	"github.com/openbooks/bookkeeping_engine/internal/utils/mapping"
)

const scheduleColumns = `schedule_id, entry_id, reverse_on, deadline_on, reminder_on, category, status, approval_required, approved_by, approved_at, authorization_level, reversal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxReversingRepository struct {
	BaseRepository
}

// newPgxReversingRepository creates a new repository for reversal queue data.
func newPgxReversingRepository(pool *pgxpool.Pool) portsrepo.ReversingRepositoryFacade {
	return &PgxReversingRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxReversingRepository implements portsrepo.ReversingRepositoryFacade
var _ portsrepo.ReversingRepositoryFacade = (*PgxReversingRepository)(nil)

func scanSchedule(row pgx.Row) (*models.ReversingSchedule, error) {
	var m models.ReversingSchedule
	err := row.Scan(
		&m.ScheduleID,
		&m.EntryID,
		&m.ReverseOn,
		&m.DeadlineOn,
		&m.ReminderOn,
		&m.Category,
		&m.Status,
		&m.ApprovalRequired,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.AuthorizationLevel,
		&m.ReversalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveSchedule persists a new reversing schedule. One schedule per entry.
func (r *PgxReversingRepository) SaveSchedule(ctx context.Context, schedule domain.ReversingSchedule) error {
	m := mapping.ToModelReversingSchedule(schedule)
	query := `
		INSERT INTO reversing_schedules (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ScheduleID, m.EntryID, m.ReverseOn, m.DeadlineOn, m.ReminderOn, m.Category,
		m.Status, m.ApprovalRequired, m.ApprovedBy, m.ApprovedAt, m.AuthorizationLevel,
		m.ReversalEntryID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("schedule for entry %s already exists: %w", m.EntryID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save schedule %s: %w", m.ScheduleID, err)
	}
	return nil
}

// FindScheduleByID retrieves a schedule by its ID.
func (r *PgxReversingRepository) FindScheduleByID(ctx context.Context, scheduleID string) (*domain.ReversingSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM reversing_schedules WHERE schedule_id = $1;`
	return r.findOne(ctx, query, scheduleID)
}

// FindScheduleByEntryID retrieves the schedule attached to an entry.
func (r *PgxReversingRepository) FindScheduleByEntryID(ctx context.Context, entryID string) (*domain.ReversingSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM reversing_schedules WHERE entry_id = $1;`
	return r.findOne(ctx, query, entryID)
}

func (r *PgxReversingRepository) findOne(ctx context.Context, query string, arg any) (*domain.ReversingSchedule, error) {
	m, err := scanSchedule(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	schedule := mapping.ToDomainReversingSchedule(*m)
	return &schedule, nil
}

// ListOpenSchedules retrieves schedules not yet processed, ordered by reverse date.
func (r *PgxReversingRepository) ListOpenSchedules(ctx context.Context) ([]domain.ReversingSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM reversing_schedules WHERE status <> $1 ORDER BY reverse_on, created_at;`
	return r.querySchedules(ctx, query, string(domain.ScheduleProcessed))
}

// ListSchedulesDue retrieves unprocessed schedules due on or before asOf.
func (r *PgxReversingRepository) ListSchedulesDue(ctx context.Context, asOf time.Time) ([]domain.ReversingSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM reversing_schedules WHERE status <> $1 AND reverse_on <= $2 ORDER BY reverse_on, created_at;`
	return r.querySchedules(ctx, query, string(domain.ScheduleProcessed), asOf)
}

func (r *PgxReversingRepository) querySchedules(ctx context.Context, query string, args ...any) ([]domain.ReversingSchedule, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []models.ReversingSchedule
	for rows.Next() {
		m, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		schedules = append(schedules, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}
	return mapping.ToDomainReversingScheduleSlice(schedules), nil
}

// UpdateScheduleStatus transitions a schedule between workflow states.
func (r *PgxReversingRepository) UpdateScheduleStatus(ctx context.Context, scheduleID string, status domain.ScheduleStatus, reversalEntryID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE reversing_schedules
		SET status = $2, reversal_entry_id = COALESCE($3, reversal_entry_id),
		    last_updated_at = $4, last_updated_by = $5
		WHERE schedule_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, scheduleID, string(status), reversalEntryID, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of schedule %s: %w", scheduleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApproveSchedule records approval of a schedule.
func (r *PgxReversingRepository) ApproveSchedule(ctx context.Context, scheduleID string, approvedBy string, approvedAt time.Time) error {
	query := `
		UPDATE reversing_schedules
		SET approved_by = $2, approved_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE schedule_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, scheduleID, approvedBy, approvedAt)
	if err != nil {
		return fmt.Errorf("failed to approve schedule %s: %w", scheduleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
