package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the closed set of transaction kinds. Every balance rule in the
// engine is keyed on it, so adding a kind is a compile-visible change.
type Kind string

const (
	KindSalesInvoice    Kind = "sales_invoice"
	KindSalesReturn     Kind = "sales_return"
	KindPurchaseInvoice Kind = "purchase_invoice"
	KindPurchaseReturn  Kind = "purchase_return"
	KindReceiptVoucher  Kind = "receipt_voucher"
	KindPaymentVoucher  Kind = "payment_voucher"
	KindStoreReceipt    Kind = "store_receipt"
	KindStoreIssue      Kind = "store_issue"
	KindStoreTransfer   Kind = "store_transfer"
)

var AllKinds = []Kind{
	KindSalesInvoice,
	KindSalesReturn,
	KindPurchaseInvoice,
	KindPurchaseReturn,
	KindReceiptVoucher,
	KindPaymentVoucher,
	KindStoreReceipt,
	KindStoreIssue,
	KindStoreTransfer,
}

// EntityType identifies what a voucher's account reference points at.
// Invoices imply their counterparty from the kind and leave it empty.
type EntityType string

const (
	EntityCustomer EntityType = "customer"
	EntitySupplier EntityType = "supplier"
	EntityPartner  EntityType = "current_account"
	EntityExpense  EntityType = "expense"
)

// Totals is the monetary decomposition of a transaction. Vouchers carry the
// whole amount in Net and leave the other fields zero.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Net      decimal.Decimal `json:"net"`
}

// LineEntry is a single row within a transaction: an item movement on stock
// documents and invoices, or an amount split on vouchers.
type LineEntry struct {
	ID            int64           `json:"id,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	ItemID        string          `json:"item_id,omitempty"`
	AccountID     string          `json:"account_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Amount        decimal.Decimal `json:"amount"`
}

// Transaction is one immutable record in the append-only history. Records
// are never edited or deleted; corrections enter as new records.
type Transaction struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Date   time.Time `json:"date"`
	Totals Totals `json:"totals"`

	// AccountID names the counterparty: the customer or supplier on an
	// invoice, or the voucher's entity. Empty references are tolerated by
	// the engine and excluded with a data-quality warning.
	AccountID  string     `json:"account_id,omitempty"`
	EntityType EntityType `json:"entity_type,omitempty"`

	// Refund marks a voucher that reverses the usual direction: a payment
	// refunding a customer, or a receipt refunded by a supplier.
	Refund bool `json:"refund,omitempty"`

	// SettlementID is the safe or bank receiving/paying the money on a
	// cash-settled invoice or a voucher. Empty means settled on account.
	SettlementID string `json:"settlement_id,omitempty"`

	Branch    string `json:"branch,omitempty"`
	FromStore string `json:"from_store,omitempty"`
	ToStore   string `json:"to_store,omitempty"`

	Lines     []LineEntry `json:"lines,omitempty"`
	CreatedAt time.Time   `json:"created_at,omitempty"`
}

// IsInvoice reports whether the kind is a sales/purchase invoice or return.
func (k Kind) IsInvoice() bool {
	switch k {
	case KindSalesInvoice, KindSalesReturn, KindPurchaseInvoice, KindPurchaseReturn:
		return true
	}
	return false
}

// IsVoucher reports whether the kind is a cash voucher.
func (k Kind) IsVoucher() bool {
	return k == KindReceiptVoucher || k == KindPaymentVoucher
}

// IsStockDocument reports whether the kind moves stock without money.
func (k Kind) IsStockDocument() bool {
	switch k {
	case KindStoreReceipt, KindStoreIssue, KindStoreTransfer:
		return true
	}
	return false
}

// ValidKind checks if a kind string is one of the closed set.
func ValidKind(k Kind) bool {
	for _, known := range AllKinds {
		if known == k {
			return true
		}
	}
	return false
}

// Validate checks transaction invariants.
func (t *Transaction) Validate() error {
	if !ValidKind(t.Kind) {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction date is required", ErrInvalidDate)
	}
	if t.Totals.Net.IsNegative() {
		return fmt.Errorf("%w: net must be a non-negative magnitude, got %s", ErrInvalidAmount, t.Totals.Net)
	}
	if t.Kind.IsStockDocument() && len(t.Lines) == 0 {
		return ErrNoLines
	}
	for i, line := range t.Lines {
		if line.ItemID == "" && line.AccountID == "" {
			return fmt.Errorf("%w: line %d has neither item nor account", ErrInvalidLine, i)
		}
		if line.Quantity.IsNegative() {
			return fmt.Errorf("%w: line %d quantity %s is negative", ErrInvalidLine, i, line.Quantity)
		}
	}
	return nil
}
