package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	"github.com/openbooks/bookkeeping_engine/internal/models"
	"github.com/openbooks/bookkeeping_engine/internal/utils/mapping"
)

const requestColumns = `request_id, period_id, description, status, requested_on, requested_by, entry_id, approved_by, approved_on, notes`

type PgxAdjustmentRepository struct {
	BaseRepository
}

// newPgxAdjustmentRepository creates a new repository for adjustment requests.
func newPgxAdjustmentRepository(pool *pgxpool.Pool) portsrepo.AdjustmentRepositoryFacade {
	return &PgxAdjustmentRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAdjustmentRepository implements portsrepo.AdjustmentRepositoryFacade
var _ portsrepo.AdjustmentRepositoryFacade = (*PgxAdjustmentRepository)(nil)

func scanRequest(row pgx.Row) (*models.AdjustmentRequest, error) {
	var m models.AdjustmentRequest
	err := row.Scan(
		&m.RequestID,
		&m.PeriodID,
		&m.Description,
		&m.Status,
		&m.RequestedOn,
		&m.RequestedBy,
		&m.EntryID,
		&m.ApprovedBy,
		&m.ApprovedOn,
		&m.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveRequest persists a new adjustment request.
func (r *PgxAdjustmentRepository) SaveRequest(ctx context.Context, request domain.AdjustmentRequest) error {
	m := mapping.ToModelAdjustmentRequest(request)
	query := `
		INSERT INTO adjustment_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID, m.PeriodID, m.Description, m.Status, m.RequestedOn,
		m.RequestedBy, m.EntryID, m.ApprovedBy, m.ApprovedOn, m.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to save adjustment request %s: %w", m.RequestID, err)
	}
	return nil
}

// FindRequestByID retrieves an adjustment request by its ID.
func (r *PgxAdjustmentRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.AdjustmentRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM adjustment_requests WHERE request_id = $1;`

	m, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find adjustment request %s: %w", requestID, err)
	}
	request := mapping.ToDomainAdjustmentRequest(*m)
	return &request, nil
}

// ListRequestsByPeriod retrieves all requests raised for a period.
func (r *PgxAdjustmentRepository) ListRequestsByPeriod(ctx context.Context, periodID string) ([]domain.AdjustmentRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM adjustment_requests WHERE period_id = $1 ORDER BY requested_on;`
	return r.queryRequests(ctx, query, periodID)
}

// ListOpenRequests retrieves requests still awaiting resolution.
func (r *PgxAdjustmentRepository) ListOpenRequests(ctx context.Context) ([]domain.AdjustmentRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM adjustment_requests WHERE status = $1 ORDER BY requested_on;`
	return r.queryRequests(ctx, query, string(domain.AdjustmentRequested))
}

func (r *PgxAdjustmentRepository) queryRequests(ctx context.Context, query string, args ...any) ([]domain.AdjustmentRequest, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustment requests: %w", err)
	}
	defer rows.Close()

	var requests []models.AdjustmentRequest
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}
	return mapping.ToDomainAdjustmentRequestSlice(requests), nil
}

// ResolveRequest marks a request posted or rejected.
func (r *PgxAdjustmentRepository) ResolveRequest(ctx context.Context, requestID string, status domain.AdjustmentStatus, entryID *string, resolvedBy string, resolvedOn time.Time) error {
	query := `
		UPDATE adjustment_requests
		SET status = $2, entry_id = COALESCE($3, entry_id), approved_by = $4, approved_on = $5
		WHERE request_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, requestID, string(status), entryID, resolvedBy, resolvedOn)
	if err != nil {
		return fmt.Errorf("failed to resolve adjustment request %s: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
