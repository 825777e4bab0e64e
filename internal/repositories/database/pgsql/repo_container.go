package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	reversingRepo := newPgxReversingRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)
	adjustmentRepo := newPgxAdjustmentRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	cycleRepo := newPgxCycleRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		PeriodRepo:     periodRepo,
		JournalRepo:    journalRepo,
		ReversingRepo:  reversingRepo,
		ReportingRepo:  reportingRepo,
		AdjustmentRepo: adjustmentRepo,
		AuditRepo:      auditRepo,
		CycleRepo:      cycleRepo,
	}
}
