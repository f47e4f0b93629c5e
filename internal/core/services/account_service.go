package services

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/bizbooks/ledgercore/internal/core/domain"
	portsrepo "github.com/bizbooks/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/ledgercore/internal/core/ports/services"
	"github.com/bizbooks/ledgercore/internal/dto"
	"github.com/bizbooks/ledgercore/internal/logging"
	"github.com/bizbooks/ledgercore/internal/tenant"
)

//go:embed default_chart.yaml
var defaultChartYAML []byte

// defaultChart mirrors the structure of default_chart.yaml.
type defaultChart struct {
	Accounts []struct {
		Code    string `yaml:"code"`
		Name    string `yaml:"name"`
		Type    string `yaml:"type"`
		SubType string `yaml:"subtype"`
		System  bool   `yaml:"system"`
	} `yaml:"accounts"`
}

// accountService manages each tenant's chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	validate    *validator.Validate
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		validate:    validator.New(),
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account in the bound tenant's chart.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.ChartOfAccount, error) {
	logger := logging.FromCtx(ctx)

	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	account, err := domain.NewChartOfAccount(tenantID, uuid.NewString(), req.Code, req.Name, req.AccountType, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	account.SubType = req.SubType
	account.Description = req.Description

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account by id within the bound tenant.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.ChartOfAccount, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByCode retrieves an account by chart code within the bound tenant.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

// ListAccounts retrieves a paginated list of the bound tenant's accounts.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	accounts, nextToken, err := s.accountRepo.ListAccounts(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	responses := make([]dto.AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = dto.ToAccountResponse(&account)
	}
	return &dto.ListAccountsResponse{Accounts: responses, NextToken: nextToken}, nil
}

// UpdateAccount updates mutable fields of an account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.ChartOfAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if account.IsSystem {
			return nil, fmt.Errorf("%w: system account %s cannot be renamed", apperrors.ErrValidation, account.Code)
		}
		account.Name = *req.Name
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	return account, nil
}

// DeactivateAccount marks an account inactive. System accounts and
// accounts referenced by journal lines are protected.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := logging.FromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return fmt.Errorf("%w: system account %s cannot be deactivated", apperrors.ErrValidation, account.Code)
	}

	referenced, err := s.accountRepo.HasJournalLines(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check journal references for account %s: %w", accountID, err)
	}
	if referenced {
		return fmt.Errorf("%w: account %s is referenced by journal lines", apperrors.ErrConflict, account.Code)
	}

	account.IsActive = false
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// SeedDefaultChart creates the default chart of accounts for a tenant.
// Called at provisioning time with an explicit tenant id, before any
// request context for the tenant exists.
func (s *accountService) SeedDefaultChart(ctx context.Context, tenantID string, userID string) error {
	logger := logging.FromCtx(ctx)

	if tenantID == "" {
		return apperrors.ErrTenantRequired
	}

	var chart defaultChart
	if err := yaml.Unmarshal(defaultChartYAML, &chart); err != nil {
		return fmt.Errorf("failed to parse default chart: %w", err)
	}

	now := time.Now().UTC()
	accounts := make([]domain.ChartOfAccount, 0, len(chart.Accounts))
	for _, seed := range chart.Accounts {
		account, err := domain.NewChartOfAccount(tenantID, uuid.NewString(), seed.Code, seed.Name, domain.AccountType(seed.Type), userID, now)
		if err != nil {
			return fmt.Errorf("invalid seed account %s: %w", seed.Code, err)
		}
		account.SubType = seed.SubType
		account.IsSystem = seed.System
		accounts = append(accounts, account)
	}

	// Bind the new tenant explicitly so the scoped repository accepts the write.
	seedCtx := tenant.WithID(ctx, tenantID)
	if err := s.accountRepo.SaveAccounts(seedCtx, accounts); err != nil {
		return fmt.Errorf("failed to seed default chart for tenant %s: %w", tenantID, err)
	}

	logger.Info("Default chart seeded", slog.String("tenant_id", tenantID), slog.Int("accounts", len(accounts)))
	return nil
}
