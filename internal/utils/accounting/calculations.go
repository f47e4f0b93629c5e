package accounting

import (
	"fmt"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/bizbooks/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateLines checks the structural validity of a set of journal lines:
// at least two lines, and every line a pure debit or a pure credit with a
// positive amount. Returns apperrors.ErrValidation on violation.
func ValidateLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}
	for i, line := range lines {
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i)
		}
		if debitSet == creditSet {
			return fmt.Errorf("%w: line %d must be a pure debit or a pure credit", apperrors.ErrValidation, i)
		}
		if line.AccountID == "" {
			return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, i)
		}
	}
	return nil
}

// ValidateBalance checks the core double-entry invariant: the sum of all
// debits equals the sum of all credits, compared exactly as fixed-point
// decimals. Returns apperrors.ErrUnbalancedEntry on violation.
func ValidateBalance(lines []domain.JournalLine) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}
	return nil
}

// SwapSides returns a copy of the lines with every debit and credit
// exchanged, same accounts and amounts. Used to build reversal entries.
func SwapSides(lines []domain.JournalLine) []domain.JournalLine {
	swapped := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		swapped[i] = line
		swapped[i].Debit = line.Credit
		swapped[i].Credit = line.Debit
	}
	return swapped
}

// TotalDebits returns the debit-side sum, the economic value of a balanced entry.
func TotalDebits(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}
