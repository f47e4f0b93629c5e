package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/bizbooks/ledgercore/internal/core/domain"
	portsrepo "github.com/bizbooks/ledgercore/internal/core/ports/repositories"
	"github.com/bizbooks/ledgercore/internal/models"
	"github.com/bizbooks/ledgercore/internal/utils/mapping"
)

// PgxTenantRepository stores tenants. Tenant administration is a
// cross-tenant concern, so these queries take explicit tenant ids rather
// than reading the context binding.
type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

// SaveTenant persists a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	model := mapping.ToModelTenant(tenant)

	settingsJSON, err := json.Marshal(model.GLSettings)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode GL settings", err)
	}

	query := `
		INSERT INTO tenants (tenant_id, name, default_currency_code, gl_settings, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.Pool.Exec(ctx, query,
		model.TenantID,
		model.Name,
		model.DefaultCurrencyCode,
		settingsJSON,
		model.IsActive,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: tenant %s", apperrors.ErrDuplicate, model.TenantID)
		}
		return apperrors.NewAppError(500, "failed to save tenant "+model.TenantID, err)
	}
	return nil
}

// FindTenantByID retrieves a tenant by its unique identifier.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, default_currency_code, gl_settings, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var model models.Tenant
	var settingsJSON []byte
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&model.TenantID,
		&model.Name,
		&model.DefaultCurrencyCode,
		&settingsJSON,
		&model.IsActive,
		&model.CreatedAt,
		&model.CreatedBy,
		&model.LastUpdatedAt,
		&model.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: tenant %s", apperrors.ErrNotFound, tenantID)
		}
		return nil, apperrors.NewAppError(500, "failed to find tenant "+tenantID, err)
	}

	if len(settingsJSON) > 0 {
		if err := json.Unmarshal(settingsJSON, &model.GLSettings); err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode GL settings for tenant "+tenantID, err)
		}
	}

	tenant := mapping.ToDomainTenant(model)
	return &tenant, nil
}

// UpdateGLSettings replaces the tenant's role to account-code mapping.
func (r *PgxTenantRepository) UpdateGLSettings(ctx context.Context, tenantID string, settings map[string]string, updatedBy string) error {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode GL settings", err)
	}

	query := `
		UPDATE tenants
		SET gl_settings = $2, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, settingsJSON, time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update GL settings for tenant "+tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tenant %s", apperrors.ErrNotFound, tenantID)
	}
	return nil
}

// SetTenantActive toggles the tenant's active flag.
func (r *PgxTenantRepository) SetTenantActive(ctx context.Context, tenantID string, active bool, updatedBy string) error {
	query := `
		UPDATE tenants
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, active, time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update tenant "+tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tenant %s", apperrors.ErrNotFound, tenantID)
	}
	return nil
}
