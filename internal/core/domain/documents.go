package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType tags the kind of business document that triggered a posting.
type SourceType string

const (
	SourceSalesInvoice    SourceType = "SALES_INVOICE"
	SourcePurchaseInvoice SourceType = "PURCHASE_INVOICE"
	SourceReceipt         SourceType = "RECEIPT"
	SourceSupplierPayment SourceType = "SUPPLIER_PAYMENT"
)

// PaymentMethod selects which money account a receipt or payment moves through.
type PaymentMethod string

const (
	MethodBank PaymentMethod = "BANK"
	MethodCash PaymentMethod = "CASH"
)

// SourceDocument is the view of a business document the posting engine
// needs: its polymorphic reference and its owning tenant. The documents
// themselves live outside this engine; these structs are the inbound
// representation handed to posting rules.
type SourceDocument interface {
	DocSourceType() SourceType
	DocSourceID() string
	DocTenantID() string
	DocDate() time.Time
}

// SalesInvoice is a customer invoice ready to be posted.
type SalesInvoice struct {
	InvoiceID     string          `validate:"required"`
	TenantID      string          `validate:"required"`
	InvoiceNumber string          `validate:"required"`
	InvoiceDate   time.Time       `validate:"required"`
	CustomerName  string
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
}

func (i SalesInvoice) DocSourceType() SourceType { return SourceSalesInvoice }
func (i SalesInvoice) DocSourceID() string       { return i.InvoiceID }
func (i SalesInvoice) DocTenantID() string       { return i.TenantID }
func (i SalesInvoice) DocDate() time.Time        { return i.InvoiceDate }

// PurchaseInvoice is a supplier invoice ready to be posted.
// ForInventory selects whether the debit side hits inventory or expense.
type PurchaseInvoice struct {
	InvoiceID     string          `validate:"required"`
	TenantID      string          `validate:"required"`
	InvoiceNumber string          `validate:"required"`
	InvoiceDate   time.Time       `validate:"required"`
	SupplierName  string
	ForInventory  bool
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
}

func (i PurchaseInvoice) DocSourceType() SourceType { return SourcePurchaseInvoice }
func (i PurchaseInvoice) DocSourceID() string       { return i.InvoiceID }
func (i PurchaseInvoice) DocTenantID() string       { return i.TenantID }
func (i PurchaseInvoice) DocDate() time.Time        { return i.InvoiceDate }

// Receipt records money received from a customer.
type Receipt struct {
	ReceiptID     string          `validate:"required"`
	TenantID      string          `validate:"required"`
	ReceiptNumber string          `validate:"required"`
	ReceiptDate   time.Time       `validate:"required"`
	CustomerName  string
	Method        PaymentMethod   `validate:"required,oneof=BANK CASH"`
	Amount        decimal.Decimal
}

func (r Receipt) DocSourceType() SourceType { return SourceReceipt }
func (r Receipt) DocSourceID() string       { return r.ReceiptID }
func (r Receipt) DocTenantID() string       { return r.TenantID }
func (r Receipt) DocDate() time.Time        { return r.ReceiptDate }

// SupplierPayment records money paid to a supplier.
type SupplierPayment struct {
	PaymentID     string          `validate:"required"`
	TenantID      string          `validate:"required"`
	PaymentNumber string          `validate:"required"`
	PaymentDate   time.Time       `validate:"required"`
	SupplierName  string
	Method        PaymentMethod   `validate:"required,oneof=BANK CASH"`
	Amount        decimal.Decimal
}

func (p SupplierPayment) DocSourceType() SourceType { return SourceSupplierPayment }
func (p SupplierPayment) DocSourceID() string       { return p.PaymentID }
func (p SupplierPayment) DocTenantID() string       { return p.TenantID }
func (p SupplierPayment) DocDate() time.Time        { return p.PaymentDate }
