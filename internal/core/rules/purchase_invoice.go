package rules

import (
	"context"
	"fmt"

	"github.com/bizbooks/ledgercore/internal/core/domain"
)

// purchaseInvoiceRule posts a supplier invoice:
// Dr inventory or purchase expense for the subtotal, Dr input tax for
// the tax amount (omitted when zero), Cr accounts payable for the total.
type purchaseInvoiceRule struct {
	resolver Resolver
	invoice  domain.PurchaseInvoice
}

// NewPurchaseInvoiceRule binds the purchase invoice posting rule to a document.
func NewPurchaseInvoiceRule(resolver Resolver, invoice domain.PurchaseInvoice) PostingRule {
	return &purchaseInvoiceRule{resolver: resolver, invoice: invoice}
}

var _ PostingRule = (*purchaseInvoiceRule)(nil)

func (r *purchaseInvoiceRule) Document() domain.SourceDocument {
	return r.invoice
}

func (r *purchaseInvoiceRule) JournalLines(ctx context.Context) ([]domain.JournalLine, error) {
	debitRole, debitFallback, debitLabel := RolePurchaseExpense, FallbackPurchaseExpense, "Purchases"
	if r.invoice.ForInventory {
		debitRole, debitFallback, debitLabel = RoleInventory, FallbackInventory, "Inventory"
	}

	debitAccountID, err := requireAccount(ctx, r.resolver, debitRole, debitFallback)
	if err != nil {
		return nil, err
	}
	apAccountID, err := requireAccount(ctx, r.resolver, RoleAccountsPayable, FallbackAccountsPayable)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		domain.DebitLine(debitAccountID, r.invoice.Subtotal, debitLabel),
	}

	if r.invoice.TaxAmount.IsPositive() {
		taxAccountID, err := requireAccount(ctx, r.resolver, RoleTaxInput, FallbackTaxInput)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.DebitLine(taxAccountID, r.invoice.TaxAmount, "Input tax"))
	}

	lines = append(lines, domain.CreditLine(apAccountID, r.invoice.Total, "Accounts payable"))
	return lines, nil
}

func (r *purchaseInvoiceRule) Description() string {
	if r.invoice.SupplierName != "" {
		return fmt.Sprintf("Purchase invoice %s from %s", r.invoice.InvoiceNumber, r.invoice.SupplierName)
	}
	return fmt.Sprintf("Purchase invoice %s", r.invoice.InvoiceNumber)
}

func (r *purchaseInvoiceRule) Reference() string {
	return r.invoice.InvoiceNumber
}
