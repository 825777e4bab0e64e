package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	"github.com/openbooks/bookkeeping_engine/internal/models"
	"github.com/openbooks/bookkeeping_engine/internal/utils/mapping"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report aggregates.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountActivity aggregates gross debits and credits per account under
// the given filter. Accounts with no matching lines are omitted.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, filter domain.ActivityFilter) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE 1=1
	`
	args := []any{}
	argPos := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND e.status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.PeriodID != "" {
		query += fmt.Sprintf(" AND e.period_id = $%d", argPos)
		args = append(args, filter.PeriodID)
		argPos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND e.entry_date >= $%d", argPos)
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND e.entry_date <= $%d", argPos)
		args = append(args, *filter.To)
		argPos++
	}
	if len(filter.AccountIDs) > 0 {
		query += fmt.Sprintf(" AND l.account_id = ANY($%d)", argPos)
		args = append(args, filter.AccountIDs)
		argPos++
	}
	if filter.PermanentOnly {
		query += " AND a.is_permanent = TRUE"
	}
	if filter.ExcludeClosing {
		query += fmt.Sprintf(" AND e.entry_type <> $%d", argPos)
		args = append(args, string(domain.EntryTypeClosing))
		argPos++
	}
	if filter.ExcludeReversing {
		query += fmt.Sprintf(" AND e.entry_type <> $%d", argPos)
		args = append(args, string(domain.EntryTypeReversing))
		argPos++
	}

	query += `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account activity: %w", err)
	}
	defer rows.Close()

	var activities []domain.AccountActivity
	for rows.Next() {
		var act domain.AccountActivity
		var accountType string
		if err := rows.Scan(&act.AccountID, &act.Code, &act.Name, &accountType, &act.TotalDebit, &act.TotalCredit); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		act.AccountType = domain.AccountType(accountType)
		activities = append(activities, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return activities, nil
}

// GetCashEntries retrieves entries of the given status touching the cash
// account in a date window, with all of their lines attached.
func (r *PgxReportingRepository) GetCashEntries(ctx context.Context, cashAccountID string, from, to time.Time, status domain.EntryStatus) ([]domain.JournalEntry, error) {
	entryQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE status = $1 AND entry_date >= $2 AND entry_date <= $3
		  AND entry_id IN (SELECT entry_id FROM journal_lines WHERE account_id = $4)
		ORDER BY entry_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, entryQuery, string(status), from, to, cashAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash entries: %w", err)
	}
	defer rows.Close()

	var entryModels []models.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entryModels = append(entryModels, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	rows.Close()

	entries := mapping.ToDomainJournalEntrySlice(entryModels)
	if len(entries) == 0 {
		return entries, nil
	}

	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}

	lineQuery := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_id;`
	lineRows, err := r.Pool.Query(ctx, lineQuery, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash entry lines: %w", err)
	}
	defer lineRows.Close()

	linesByEntry := make(map[string][]domain.JournalLine, len(entries))
	for lineRows.Next() {
		m, err := scanLine(lineRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		linesByEntry[m.EntryID] = append(linesByEntry[m.EntryID], mapping.ToDomainJournalLine(*m))
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}

	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}
