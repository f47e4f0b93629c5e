package models

// Tenant represents a tenant row. GLSettings is stored as a jsonb column
// mapping semantic account roles to chart codes.
type Tenant struct {
	TenantID            string            `db:"tenant_id"`
	Name                string            `db:"name"`
	DefaultCurrencyCode string            `db:"default_currency_code"`
	GLSettings          map[string]string `db:"gl_settings"`
	IsActive            bool              `db:"is_active"`
	AuditFields
}
