package rules

import (
	"context"
	"fmt"

	"github.com/bizbooks/ledgercore/internal/core/domain"
)

// supplierPaymentRule posts a payment made to a supplier:
// Dr accounts payable for the amount, Cr bank or cash for the amount.
type supplierPaymentRule struct {
	resolver Resolver
	payment  domain.SupplierPayment
}

// NewSupplierPaymentRule binds the supplier payment posting rule to a document.
func NewSupplierPaymentRule(resolver Resolver, payment domain.SupplierPayment) PostingRule {
	return &supplierPaymentRule{resolver: resolver, payment: payment}
}

var _ PostingRule = (*supplierPaymentRule)(nil)

func (r *supplierPaymentRule) Document() domain.SourceDocument {
	return r.payment
}

func (r *supplierPaymentRule) JournalLines(ctx context.Context) ([]domain.JournalLine, error) {
	apAccountID, err := requireAccount(ctx, r.resolver, RoleAccountsPayable, FallbackAccountsPayable)
	if err != nil {
		return nil, err
	}
	role, fallback := moneyRole(r.payment.Method)
	moneyAccountID, err := requireAccount(ctx, r.resolver, role, fallback)
	if err != nil {
		return nil, err
	}

	return []domain.JournalLine{
		domain.DebitLine(apAccountID, r.payment.Amount, "Accounts payable"),
		domain.CreditLine(moneyAccountID, r.payment.Amount, "Payment made"),
	}, nil
}

func (r *supplierPaymentRule) Description() string {
	if r.payment.SupplierName != "" {
		return fmt.Sprintf("Supplier payment %s to %s", r.payment.PaymentNumber, r.payment.SupplierName)
	}
	return fmt.Sprintf("Supplier payment %s", r.payment.PaymentNumber)
}

func (r *supplierPaymentRule) Reference() string {
	return r.payment.PaymentNumber
}
