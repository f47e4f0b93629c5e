package rules_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizbooks/ledgercore/internal/apperrors"
	"github.com/bizbooks/ledgercore/internal/core/domain"
	"github.com/bizbooks/ledgercore/internal/core/rules"
	"github.com/bizbooks/ledgercore/internal/utils/accounting"
)

// stubResolver resolves roles from a fixed map; unknown roles resolve to "".
type stubResolver struct {
	byRole map[string]string
}

func (s *stubResolver) GetAccountID(_ context.Context, role string, _ string) (string, error) {
	return s.byRole[role], nil
}

func fullResolver() *stubResolver {
	return &stubResolver{byRole: map[string]string{
		rules.RoleAccountsReceivable: "acc-ar",
		rules.RoleAccountsPayable:    "acc-ap",
		rules.RoleSalesRevenue:       "acc-sales",
		rules.RoleTaxPayable:         "acc-tax-out",
		rules.RoleTaxInput:           "acc-tax-in",
		rules.RoleInventory:          "acc-inv",
		rules.RolePurchaseExpense:    "acc-exp",
		rules.RoleBank:               "acc-bank",
		rules.RoleCash:               "acc-cash",
	}}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func findLine(t *testing.T, lines []domain.JournalLine, accountID string) domain.JournalLine {
	t.Helper()
	for _, l := range lines {
		if l.AccountID == accountID {
			return l
		}
	}
	t.Fatalf("no line for account %s", accountID)
	return domain.JournalLine{}
}

func TestSalesInvoiceRule_WithTax(t *testing.T) {
	invoice := domain.SalesInvoice{
		InvoiceID:     "inv-1",
		TenantID:      "t-1",
		InvoiceNumber: "INV-001",
		InvoiceDate:   time.Now(),
		CustomerName:  "Acme Ltd",
		Subtotal:      dec("100"),
		TaxAmount:     dec("6"),
		Total:         dec("106"),
	}

	rule, err := rules.ForDocument(invoice, fullResolver())
	require.NoError(t, err)

	lines, err := rule.JournalLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.True(t, findLine(t, lines, "acc-ar").Debit.Equal(dec("106")))
	assert.True(t, findLine(t, lines, "acc-sales").Credit.Equal(dec("100")))
	assert.True(t, findLine(t, lines, "acc-tax-out").Credit.Equal(dec("6")))
	assert.NoError(t, accounting.ValidateBalance(lines))
	assert.Contains(t, rule.Description(), "INV-001")
	assert.Equal(t, "INV-001", rule.Reference())
}

func TestSalesInvoiceRule_ZeroTaxOmitsTaxLine(t *testing.T) {
	invoice := domain.SalesInvoice{
		InvoiceID:     "inv-2",
		TenantID:      "t-1",
		InvoiceNumber: "INV-002",
		InvoiceDate:   time.Now(),
		Subtotal:      dec("50"),
		TaxAmount:     decimal.Zero,
		Total:         dec("50"),
	}

	rule, err := rules.ForDocument(invoice, fullResolver())
	require.NoError(t, err)

	lines, err := rule.JournalLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.NoError(t, accounting.ValidateBalance(lines))
}

func TestPurchaseInvoiceRule_InventoryVsExpense(t *testing.T) {
	base := domain.PurchaseInvoice{
		InvoiceID:     "pi-1",
		TenantID:      "t-1",
		InvoiceNumber: "PI-001",
		InvoiceDate:   time.Now(),
		Subtotal:      dec("200"),
		TaxAmount:     dec("12"),
		Total:         dec("212"),
	}

	forInventory := base
	forInventory.ForInventory = true
	rule, err := rules.ForDocument(forInventory, fullResolver())
	require.NoError(t, err)
	lines, err := rule.JournalLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.True(t, findLine(t, lines, "acc-inv").Debit.Equal(dec("200")))
	assert.True(t, findLine(t, lines, "acc-tax-in").Debit.Equal(dec("12")))
	assert.True(t, findLine(t, lines, "acc-ap").Credit.Equal(dec("212")))
	assert.NoError(t, accounting.ValidateBalance(lines))

	rule, err = rules.ForDocument(base, fullResolver())
	require.NoError(t, err)
	lines, err = rule.JournalLines(context.Background())
	require.NoError(t, err)
	assert.True(t, findLine(t, lines, "acc-exp").Debit.Equal(dec("200")))
}

func TestReceiptRule_BankAndCash(t *testing.T) {
	receipt := domain.Receipt{
		ReceiptID:     "rc-1",
		TenantID:      "t-1",
		ReceiptNumber: "RC-001",
		ReceiptDate:   time.Now(),
		Method:        domain.MethodBank,
		Amount:        dec("500"),
	}

	rule, err := rules.ForDocument(receipt, fullResolver())
	require.NoError(t, err)
	lines, err := rule.JournalLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, findLine(t, lines, "acc-bank").Debit.Equal(dec("500")))
	assert.True(t, findLine(t, lines, "acc-ar").Credit.Equal(dec("500")))

	receipt.Method = domain.MethodCash
	rule, err = rules.ForDocument(receipt, fullResolver())
	require.NoError(t, err)
	lines, err = rule.JournalLines(context.Background())
	require.NoError(t, err)
	assert.True(t, findLine(t, lines, "acc-cash").Debit.Equal(dec("500")))
}

func TestSupplierPaymentRule(t *testing.T) {
	payment := domain.SupplierPayment{
		PaymentID:     "sp-1",
		TenantID:      "t-1",
		PaymentNumber: "SP-001",
		PaymentDate:   time.Now(),
		Method:        domain.MethodBank,
		Amount:        dec("300"),
	}

	rule, err := rules.ForDocument(payment, fullResolver())
	require.NoError(t, err)
	lines, err := rule.JournalLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, findLine(t, lines, "acc-ap").Debit.Equal(dec("300")))
	assert.True(t, findLine(t, lines, "acc-bank").Credit.Equal(dec("300")))
	assert.NoError(t, accounting.ValidateBalance(lines))
}

func TestUnresolvedRoleFailsBeforeAnyLines(t *testing.T) {
	resolver := fullResolver()
	delete(resolver.byRole, rules.RoleSalesRevenue)

	invoice := domain.SalesInvoice{
		InvoiceID:     "inv-3",
		TenantID:      "t-1",
		InvoiceNumber: "INV-003",
		InvoiceDate:   time.Now(),
		Subtotal:      dec("10"),
		Total:         dec("10"),
	}

	rule, err := rules.ForDocument(invoice, resolver)
	require.NoError(t, err)

	lines, err := rule.JournalLines(context.Background())
	assert.Nil(t, lines)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGLAccountNotConfigured))
	assert.Contains(t, err.Error(), rules.RoleSalesRevenue)
}

func TestFallbackCodesCoverAllRoles(t *testing.T) {
	for _, role := range rules.AllRoles() {
		assert.NotEmpty(t, rules.FallbackCode(role), "role %s has no fallback", role)
	}
	assert.Empty(t, rules.FallbackCode("made_up_role"))
}
