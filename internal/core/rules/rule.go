// Package rules contains the posting rule for every source document type.
// Each rule computes the balanced set of journal lines for one kind of
// business document, resolving semantic account roles through the GL
// account resolver. The set of rules is closed: adding a document type
// means adding a variant here and a case to ForDocument.
package rules

import (
	"context"
	"fmt"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/bizbooks/ledgercore/internal/core/domain"
)

// Semantic account roles used by the posting rules. Tenants remap roles
// to their own chart codes via GL settings; the fallback codes below
// match the seeded default chart.
const (
	RoleAccountsReceivable = "ar_account"
	RoleAccountsPayable    = "ap_account"
	RoleSalesRevenue       = "sales_account"
	RoleTaxPayable         = "tax_payable_account"
	RoleTaxInput           = "tax_input_account"
	RoleInventory          = "inventory_account"
	RolePurchaseExpense    = "purchase_expense_account"
	RoleBank               = "bank_account"
	RoleCash               = "cash_account"
)

// Fallback account codes, used when a tenant has not remapped a role.
const (
	FallbackAccountsReceivable = "1200"
	FallbackAccountsPayable    = "2100"
	FallbackSalesRevenue       = "4100"
	FallbackTaxPayable         = "2102"
	FallbackTaxInput           = "1205"
	FallbackInventory          = "1400"
	FallbackPurchaseExpense    = "5100"
	FallbackBank               = "1000"
	FallbackCash               = "1010"
)

// fallbackCodes indexes the default code for every known role.
var fallbackCodes = map[string]string{
	RoleAccountsReceivable: FallbackAccountsReceivable,
	RoleAccountsPayable:    FallbackAccountsPayable,
	RoleSalesRevenue:       FallbackSalesRevenue,
	RoleTaxPayable:         FallbackTaxPayable,
	RoleTaxInput:           FallbackTaxInput,
	RoleInventory:          FallbackInventory,
	RolePurchaseExpense:    FallbackPurchaseExpense,
	RoleBank:               FallbackBank,
	RoleCash:               FallbackCash,
}

// FallbackCode returns the default account code for a role, or "" for
// unknown roles.
func FallbackCode(role string) string {
	return fallbackCodes[role]
}

// AllRoles returns every role the posting rules may require, for
// configuration pre-flight checks.
func AllRoles() []string {
	return []string{
		RoleAccountsReceivable,
		RoleAccountsPayable,
		RoleSalesRevenue,
		RoleTaxPayable,
		RoleTaxInput,
		RoleInventory,
		RolePurchaseExpense,
		RoleBank,
		RoleCash,
	}
}

// Resolver maps a semantic account role to a concrete account id for the
// bound tenant. An empty id with a nil error means the role is unresolved.
type Resolver interface {
	GetAccountID(ctx context.Context, role string, fallbackCode string) (string, error)
}

// PostingRule computes the journal lines, description and reference for
// one source document. Rules never persist anything; resolution failures
// surface before any write.
type PostingRule interface {
	// Document returns the source document the rule is bound to.
	Document() domain.SourceDocument
	// JournalLines returns a non-empty, balanced set of lines.
	JournalLines(ctx context.Context) ([]domain.JournalLine, error)
	// Description returns a human-readable label for the resulting entry.
	Description() string
	// Reference returns the document's reference number.
	Reference() string
}

// ForDocument returns the posting rule for the given document type.
// The switch is exhaustive over the closed set of source documents.
func ForDocument(doc domain.SourceDocument, resolver Resolver) (PostingRule, error) {
	switch d := doc.(type) {
	case domain.SalesInvoice:
		return NewSalesInvoiceRule(resolver, d), nil
	case domain.PurchaseInvoice:
		return NewPurchaseInvoiceRule(resolver, d), nil
	case domain.Receipt:
		return NewReceiptRule(resolver, d), nil
	case domain.SupplierPayment:
		return NewSupplierPaymentRule(resolver, d), nil
	default:
		return nil, fmt.Errorf("%w: no posting rule for document type %T", apperrors.ErrValidation, doc)
	}
}

// requireAccount resolves a role and fails with GLAccountNotConfigured
// (naming the role) when nothing resolves.
func requireAccount(ctx context.Context, resolver Resolver, role, fallbackCode string) (string, error) {
	accountID, err := resolver.GetAccountID(ctx, role, fallbackCode)
	if err != nil {
		return "", err
	}
	if accountID == "" {
		return "", apperrors.NewGLAccountNotConfigured(role)
	}
	return accountID, nil
}

// moneyRole picks the bank or cash role for a payment method.
func moneyRole(method domain.PaymentMethod) (role string, fallback string) {
	if method == domain.MethodCash {
		return RoleCash, FallbackCash
	}
	return RoleBank, FallbackBank
}
