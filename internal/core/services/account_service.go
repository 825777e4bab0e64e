package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openbooks/bookkeeping_engine/internal/apperrors"
	"github.com/openbooks/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/openbooks/bookkeeping_engine/internal/core/ports/repositories"
	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	auditRepo   portsrepo.AuditRepository
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAuditRepository adds audit trail recording to account mutations
func WithAccountAuditRepository(repo portsrepo.AuditRepository) AccountServiceOption {
	return func(s *accountService) {
		s.auditRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account. The normal side is always derived
// from the account type; callers cannot override it.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	// Codes are unique; reject an explicit duplicate up front for a clearer
	// error than the constraint violation the repository would surface.
	existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s already in use", apperrors.ErrDuplicate, req.Code)
	}

	isPermanent := !req.AccountType.IsTemporary()
	if req.IsPermanent != nil {
		isPermanent = *req.IsPermanent
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		NormalSide:  req.AccountType.NormalSide(),
		IsPermanent: isPermanent,
		IsActive:    true,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.recordAudit(ctx, "account.created", account.AccountID, req.Name, creatorUserID, now)
	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	if params.AccountType != nil && !params.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *params.AccountType)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, params.AccountType, params.ActiveOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates name, description or active flag. Type and code are
// immutable once created; history would become unreadable otherwise.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = now
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	if req.IsActive != nil && *req.IsActive != account.IsActive {
		if err := s.accountRepo.SetAccountActive(ctx, accountID, *req.IsActive, requestingUserID); err != nil {
			s.LogError(ctx, err, "Failed to toggle account active flag", slog.String("account_id", accountID))
			return nil, fmt.Errorf("failed to update account status: %w", err)
		}
		account.IsActive = *req.IsActive
	}

	s.recordAudit(ctx, "account.updated", accountID, account.Name, requestingUserID, now)
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return nil // already inactive
	}

	if err := s.accountRepo.SetAccountActive(ctx, accountID, false, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.recordAudit(ctx, "account.deactivated", accountID, account.Name, requestingUserID, time.Now().UTC())
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) recordAudit(ctx context.Context, action, entityID, details, userID string, at time.Time) {
	if s.auditRepo == nil {
		return
	}
	event := domain.AuditEvent{
		EventID:     uuid.NewString(),
		Action:      action,
		EntityID:    entityID,
		Details:     details,
		PerformedBy: userID,
		OccurredAt:  at,
	}
	if err := s.auditRepo.SaveEvent(ctx, event); err != nil {
		// Audit failures are logged, never fatal to the main operation.
		s.LogError(ctx, err, "Failed to record audit event", slog.String("action", action), slog.String("entity_id", entityID))
	}
}
