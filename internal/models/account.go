package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	COGS      AccountType = "COGS"
	Expense   AccountType = "EXPENSE"
)

// Account represents one chart-of-accounts row. Code is unique per tenant.
type Account struct {
	AccountID   string      `db:"account_id"`
	TenantID    string      `db:"tenant_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	SubType     string      `db:"sub_type"`
	IsSystem    bool        `db:"is_system"`
	IsActive    bool        `db:"is_active"`
	Description string      `db:"description"`
	AuditFields
}
