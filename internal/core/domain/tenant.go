package domain

// Tenant represents an isolated customer organization. All ledger data
// is partitioned by tenant.
type Tenant struct {
	TenantID            string            `json:"tenantID"` // Primary Key (UUID)
	Name                string            `json:"name"`
	DefaultCurrencyCode string            `json:"defaultCurrencyCode"`
	GLSettings          map[string]string `json:"glSettings"` // semantic role -> account code
	IsActive            bool              `json:"isActive"`
	AuditFields
}

// GLAccountCode returns the configured account code for a semantic role,
// or the empty string if the role is unconfigured.
func (t Tenant) GLAccountCode(role string) string {
	return t.GLSettings[role]
}
