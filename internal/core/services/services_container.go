package services

import (
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountAuditRepository(repos.AuditRepo),
	)

	container.Period = NewPeriodService(repos.PeriodRepo, repos.CycleRepo)

	// Journal service first; the adjust, close and reverse stages all post
	// their entries through it.
	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		repos.PeriodRepo,
		WithJournalAuditRepository(repos.AuditRepo),
		WithReversingScheduleRepository(repos.ReversingRepo),
	)

	container.TrialBalance = NewTrialBalanceService(repos.ReportingRepo, repos.PeriodRepo)

	container.Adjusting = NewAdjustingService(
		repos.AdjustmentRepo,
		repos.ReportingRepo,
		repos.AccountRepo,
		repos.PeriodRepo,
		container.Journal,
	)

	container.Closing = NewClosingService(
		repos.PeriodRepo,
		repos.ReportingRepo,
		repos.AccountRepo,
		repos.JournalRepo,
		repos.CycleRepo,
		container.Journal,
		WithClosingAccountCodes(cfg.CapitalAccountCode, cfg.DrawingsAccountCode),
	)

	container.Reversing = NewReversingService(
		repos.ReversingRepo,
		repos.JournalRepo,
		container.Journal,
		WithReversingAuditRepository(repos.AuditRepo),
	)

	container.Statement = NewStatementService(
		repos.ReportingRepo,
		repos.AccountRepo,
		WithCashAccountCode(cfg.CashAccountCode),
	)

	container.Cycle = NewCycleService(repos.CycleRepo, repos.PeriodRepo)

	return container
}
