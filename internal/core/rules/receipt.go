package rules

import (
	"context"
	"fmt"

	"github.com/bizbooks/ledgercore/internal/core/domain"
)

// receiptRule posts a customer payment received:
// Dr bank or cash for the amount, Cr accounts receivable for the amount.
type receiptRule struct {
	resolver Resolver
	receipt  domain.Receipt
}

// NewReceiptRule binds the receipt posting rule to a document.
func NewReceiptRule(resolver Resolver, receipt domain.Receipt) PostingRule {
	return &receiptRule{resolver: resolver, receipt: receipt}
}

var _ PostingRule = (*receiptRule)(nil)

func (r *receiptRule) Document() domain.SourceDocument {
	return r.receipt
}

func (r *receiptRule) JournalLines(ctx context.Context) ([]domain.JournalLine, error) {
	role, fallback := moneyRole(r.receipt.Method)
	moneyAccountID, err := requireAccount(ctx, r.resolver, role, fallback)
	if err != nil {
		return nil, err
	}
	arAccountID, err := requireAccount(ctx, r.resolver, RoleAccountsReceivable, FallbackAccountsReceivable)
	if err != nil {
		return nil, err
	}

	return []domain.JournalLine{
		domain.DebitLine(moneyAccountID, r.receipt.Amount, "Payment received"),
		domain.CreditLine(arAccountID, r.receipt.Amount, "Accounts receivable"),
	}, nil
}

func (r *receiptRule) Description() string {
	if r.receipt.CustomerName != "" {
		return fmt.Sprintf("Receipt %s from %s", r.receipt.ReceiptNumber, r.receipt.CustomerName)
	}
	return fmt.Sprintf("Receipt %s", r.receipt.ReceiptNumber)
}

func (r *receiptRule) Reference() string {
	return r.receipt.ReceiptNumber
}
