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
	"github.com/openbooks/bookkeeping_engine/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_date, period_id, description, status, entry_type, memo, document_ref, external_ref, source_type, reversal_of, counter_of, posted_at, posted_by, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, debit, credit, notes`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.PeriodID,
		&m.Description,
		&m.Status,
		&m.EntryType,
		&m.Memo,
		&m.DocumentRef,
		&m.ExternalRef,
		&m.SourceType,
		&m.ReversalOf,
		&m.CounterOf,
		&m.PostedAt,
		&m.PostedBy,
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

func scanLine(row pgx.Row) (*models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveEntry persists an entry and its lines atomically.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	if _, err := tx.Exec(ctx, entryQuery,
		m.EntryID, m.EntryDate, m.PeriodID, m.Description, m.Status, m.EntryType,
		m.Memo, m.DocumentRef, m.ExternalRef, m.SourceType, m.ReversalOf, m.CounterOf,
		m.PostedAt, m.PostedBy, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range entry.Lines {
		lm := mapping.ToModelJournalLine(line)
		if _, err := tx.Exec(ctx, lineQuery, lm.LineID, lm.EntryID, lm.AccountID, lm.Debit, lm.Credit, lm.Notes); err != nil {
			return fmt.Errorf("failed to insert line %s for entry %s: %w", lm.LineID, m.EntryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header by its ID. Lines are loaded via
// FindLinesByEntryID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// ListEntries retrieves a page of entries using keyset pagination over
// (entry_date, created_at) descending.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, status *domain.EntryStatus, entryType *domain.EntryType, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []any{}
	argPos := 1

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*status))
		argPos++
	}
	if entryType != nil {
		query += fmt.Sprintf(" AND entry_type = $%d", argPos)
		args = append(args, string(*entryType))
		argPos++
	}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(" AND (entry_date, created_at) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, entryDate, createdAt)
		argPos += 2
	}

	// One extra row decides whether a next page exists.
	query += fmt.Sprintf(" ORDER BY entry_date DESC, created_at DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var newNextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainJournalEntrySlice(entries), newNextToken, nil
}

// FindEntriesByPeriod retrieves all entries of a period ordered by date.
func (r *PgxJournalRepository) FindEntriesByPeriod(ctx context.Context, periodID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE period_id = $1 ORDER BY entry_date, created_at;`
	return r.queryEntries(ctx, query, periodID)
}

// FindEntriesByTypeAndPeriod retrieves entries of one type inside a period.
func (r *PgxJournalRepository) FindEntriesByTypeAndPeriod(ctx context.Context, entryType domain.EntryType, periodID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_type = $1 AND period_id = $2 ORDER BY entry_date, created_at;`
	return r.queryEntries(ctx, query, string(entryType), periodID)
}

func (r *PgxJournalRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return mapping.ToDomainJournalEntrySlice(entries), nil
}

// CountEntriesByStatus counts entries in a period per status.
func (r *PgxJournalRepository) CountEntriesByStatus(ctx context.Context, periodID string) (map[domain.EntryStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM journal_entries WHERE period_id = $1 GROUP BY status;`

	rows, err := r.Pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries for period %s: %w", periodID, err)
	}
	defer rows.Close()

	counts := make(map[domain.EntryStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[domain.EntryStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating count rows: %w", err)
	}
	return counts, nil
}

// UpdateEntryStatus transitions an entry between lifecycle states.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, postedAt *time.Time, postedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, posted_at = COALESCE($3, posted_at), posted_by = CASE WHEN $3 IS NULL THEN posted_by ELSE $4 END,
		    last_updated_at = $5, last_updated_by = $4
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, string(status), postedAt, postedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateEntryLinks sets the reversal / counter linkage fields of an entry.
func (r *PgxJournalRepository) UpdateEntryLinks(ctx context.Context, entryID string, reversalOf *string, counterOf *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET reversal_of = COALESCE($2, reversal_of), counter_of = COALESCE($3, counter_of),
		    last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, reversalOf, counterOf, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update links of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindLinesByEntryID retrieves the lines of one entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY line_id;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var lines []models.JournalLine
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_id;`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines by entry IDs: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.JournalLine, len(entryIDs))
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		result[m.EntryID] = append(result[m.EntryID], mapping.ToDomainJournalLine(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return result, nil
}

// ListLinesByAccountID retrieves a page of lines touching an account using
// keyset pagination over the owning entry's (entry_date, created_at).
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.notes, e.entry_date, e.created_at
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1
	`
	args := []any{accountID}
	argPos := 2

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(" AND (e.entry_date, e.created_at) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, entryDate, createdAt)
		argPos += 2
	}

	query += fmt.Sprintf(" ORDER BY e.entry_date DESC, e.created_at DESC, l.line_id LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	type lineWithCursor struct {
		line      models.JournalLine
		entryDate time.Time
		createdAt time.Time
	}
	var page []lineWithCursor
	for rows.Next() {
		var lc lineWithCursor
		if err := rows.Scan(&lc.line.LineID, &lc.line.EntryID, &lc.line.AccountID, &lc.line.Debit, &lc.line.Credit, &lc.line.Notes, &lc.entryDate, &lc.createdAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		page = append(page, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating line rows: %w", err)
	}

	var newNextToken *string
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		token := pagination.EncodeToken(last.entryDate, last.createdAt)
		newNextToken = &token
	}

	lines := make([]domain.JournalLine, len(page))
	for i, lc := range page {
		lines[i] = mapping.ToDomainJournalLine(lc.line)
	}
	return lines, newNextToken, nil
}
