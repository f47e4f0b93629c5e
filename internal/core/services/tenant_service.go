package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/bizbooks/ledgercore/internal/core/domain"
	portsrepo "github.com/bizbooks/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/ledgercore/internal/core/ports/services"
	"github.com/bizbooks/ledgercore/internal/dto"
	"github.com/bizbooks/ledgercore/internal/logging"
	"github.com/bizbooks/ledgercore/internal/tenant"
)

// tenantService manages tenant provisioning and per-tenant GL settings.
type tenantService struct {
	tenantRepo  portsrepo.TenantRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	validate    *validator.Validate
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.TenantSvcFacade {
	return &tenantService{
		tenantRepo:  tenantRepo,
		accountRepo: accountRepo,
		accountSvc:  accountSvc,
		validate:    validator.New(),
	}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// CreateTenant provisions a new tenant and seeds its default chart.
// Runs unbound; tenant administration is a cross-tenant operation.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	logger := logging.FromCtx(ctx)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	newTenant := domain.Tenant{
		TenantID:            uuid.NewString(),
		Name:                req.Name,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		GLSettings:          map[string]string{},
		IsActive:            true,
		AuditFields:         domain.NewAuditFields(creatorUserID, now),
	}
	if req.GLSettings != nil {
		newTenant.GLSettings = req.GLSettings
	}

	if err := s.tenantRepo.SaveTenant(ctx, newTenant); err != nil {
		logger.Error("Failed to save tenant", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.accountSvc.SeedDefaultChart(ctx, newTenant.TenantID, creatorUserID); err != nil {
		return nil, err
	}

	logger.Info("Tenant provisioned", slog.String("tenant_id", newTenant.TenantID), slog.String("name", newTenant.Name))
	return &newTenant, nil
}

// GetTenantByID retrieves a tenant by id.
func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

// GetGLSettings returns the bound tenant's role to account-code mapping.
func (s *tenantService) GetGLSettings(ctx context.Context) (map[string]string, error) {
	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return t.GLSettings, nil
}

// UpdateGLSettings replaces the bound tenant's role mapping. Every
// referenced code must exist in the tenant's chart, so a typo cannot
// silently break posting later.
func (s *tenantService) UpdateGLSettings(ctx context.Context, req dto.UpdateGLSettingsRequest, userID string) error {
	logger := logging.FromCtx(ctx)

	tenantID, err := tenant.MustID(ctx)
	if err != nil {
		return err
	}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	for role, code := range req.Settings {
		if code == "" {
			return fmt.Errorf("%w: role %q maps to an empty code", apperrors.ErrValidation, role)
		}
		if _, err := s.accountRepo.FindAccountByCode(ctx, code); err != nil {
			return fmt.Errorf("%w: role %q maps to unknown account code %q", apperrors.ErrValidation, role, code)
		}
	}

	if err := s.tenantRepo.UpdateGLSettings(ctx, tenantID, req.Settings, userID); err != nil {
		return fmt.Errorf("failed to update GL settings for tenant %s: %w", tenantID, err)
	}

	logger.Info("GL settings updated", slog.String("tenant_id", tenantID), slog.Int("roles", len(req.Settings)))
	return nil
}

// DeactivateTenant marks a tenant inactive.
func (s *tenantService) DeactivateTenant(ctx context.Context, tenantID string, userID string) error {
	if tenantID == "" {
		return apperrors.ErrTenantRequired
	}
	if err := s.tenantRepo.SetTenantActive(ctx, tenantID, false, userID); err != nil {
		return fmt.Errorf("failed to deactivate tenant %s: %w", tenantID, err)
	}
	return nil
}
