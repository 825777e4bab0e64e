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

const periodColumns = `period_id, name, start_date, end_date, is_current, is_closed, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (*models.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsCurrent,
		&m.IsClosed,
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

// SavePeriod inserts a new period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	m := mapping.ToModelPeriod(period)

	query := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.IsCurrent,
		m.IsClosed,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: period %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save period %s: %w", m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

// FindCurrentPeriod retrieves the period marked as current, if any.
func (r *PgxPeriodRepository) FindCurrentPeriod(ctx context.Context) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE is_current = TRUE;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find current period: %w", err)
	}
	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

// FindPeriodForDate retrieves the period containing the given date.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE start_date <= $1 AND end_date >= $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period for date %s: %w", date.Format("2006-01-02"), err)
	}
	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

// ListPeriods retrieves all periods, newest first.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var periods []models.Period
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows: %w", err)
	}
	return mapping.ToDomainPeriodSlice(periods), nil
}

// SetCurrentPeriod marks one period current inside a transaction, clearing
// the flag everywhere else first so at most one row carries it.
func (r *PgxPeriodRepository) SetCurrentPeriod(ctx context.Context, periodID string, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `UPDATE periods SET is_current = FALSE, last_updated_at = $1, last_updated_by = $2 WHERE is_current = TRUE;`, now, updatedBy); err != nil {
		return fmt.Errorf("failed to clear current period flag: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE periods SET is_current = TRUE, last_updated_at = $2, last_updated_by = $3 WHERE period_id = $1;`, periodID, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set current period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// ClosePeriod marks a period as closed.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID string, updatedBy string, closedAt time.Time) error {
	query := `
		UPDATE periods
		SET is_closed = TRUE, is_current = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE period_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, periodID, closedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to close period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
