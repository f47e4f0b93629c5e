package rules

import (
	"context"
	"fmt"

	"github.com/bizbooks/ledgercore/internal/core/domain"
)

// salesInvoiceRule posts a customer invoice:
// Dr accounts receivable for the total, Cr sales revenue for the
// subtotal, Cr tax payable for the tax amount (omitted when zero).
type salesInvoiceRule struct {
	resolver Resolver
	invoice  domain.SalesInvoice
}

// NewSalesInvoiceRule binds the sales invoice posting rule to a document.
func NewSalesInvoiceRule(resolver Resolver, invoice domain.SalesInvoice) PostingRule {
	return &salesInvoiceRule{resolver: resolver, invoice: invoice}
}

var _ PostingRule = (*salesInvoiceRule)(nil)

func (r *salesInvoiceRule) Document() domain.SourceDocument {
	return r.invoice
}

func (r *salesInvoiceRule) JournalLines(ctx context.Context) ([]domain.JournalLine, error) {
	arAccountID, err := requireAccount(ctx, r.resolver, RoleAccountsReceivable, FallbackAccountsReceivable)
	if err != nil {
		return nil, err
	}
	salesAccountID, err := requireAccount(ctx, r.resolver, RoleSalesRevenue, FallbackSalesRevenue)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		domain.DebitLine(arAccountID, r.invoice.Total, "Accounts receivable"),
		domain.CreditLine(salesAccountID, r.invoice.Subtotal, "Sales revenue"),
	}

	if r.invoice.TaxAmount.IsPositive() {
		taxAccountID, err := requireAccount(ctx, r.resolver, RoleTaxPayable, FallbackTaxPayable)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.CreditLine(taxAccountID, r.invoice.TaxAmount, "Tax payable"))
	}
	return lines, nil
}

func (r *salesInvoiceRule) Description() string {
	if r.invoice.CustomerName != "" {
		return fmt.Sprintf("Sales invoice %s to %s", r.invoice.InvoiceNumber, r.invoice.CustomerName)
	}
	return fmt.Sprintf("Sales invoice %s", r.invoice.InvoiceNumber)
}

func (r *salesInvoiceRule) Reference() string {
	return r.invoice.InvoiceNumber
}
