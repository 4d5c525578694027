// Package engine reconstructs point-in-time balances and composes financial
// statements from an immutable transaction snapshot. Every function is a
// pure fold: no clocks, no I/O, identical inputs give identical results.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/ledger"
)

// direction is a transaction's effect on a single account's running
// balance. This is single-sided classification, not double entry.
type direction int

const (
	debit  direction = iota + 1 // increases the balance
	credit                      // decreases the balance
)

// entryRule says how one transaction kind moves one account class.
// Refund must match the transaction's refund flag exactly, so a refund
// voucher never falls through to the plain-voucher rule or vice versa.
// AnyRefund makes the flag a don't-care: cash and partner movements are
// the same either way, only the counterparty side flips on a refund.
type entryRule struct {
	Kind      ledger.Kind
	Dir       direction
	Refund    bool
	AnyRefund bool
}

// cashRules apply to safes and banks alike. A safe or bank is touched only
// as the settlement target: of a voucher always, of an invoice or return
// only when it was cash-settled (non-empty settlement reference). A refund
// voucher still moves money through the safe, hence AnyRefund.
var cashRules = []entryRule{
	{Kind: ledger.KindReceiptVoucher, Dir: debit, AnyRefund: true},
	{Kind: ledger.KindSalesInvoice, Dir: debit},
	{Kind: ledger.KindPurchaseReturn, Dir: debit},
	{Kind: ledger.KindPaymentVoucher, Dir: credit, AnyRefund: true},
	{Kind: ledger.KindPurchaseInvoice, Dir: credit},
	{Kind: ledger.KindSalesReturn, Dir: credit},
}

// classRules is the single source of truth for debit/credit classification.
// Balance reconstruction, the balance sheet, and the statement tests all
// read this table; nothing re-derives the signs inline.
var classRules = map[ledger.AccountClass][]entryRule{
	ledger.ClassCustomer: {
		{Kind: ledger.KindSalesInvoice, Dir: debit},
		{Kind: ledger.KindPaymentVoucher, Dir: debit, Refund: true},
		{Kind: ledger.KindSalesReturn, Dir: credit},
		{Kind: ledger.KindReceiptVoucher, Dir: credit},
	},
	ledger.ClassSupplier: {
		{Kind: ledger.KindPurchaseReturn, Dir: debit},
		{Kind: ledger.KindReceiptVoucher, Dir: debit, Refund: true},
		{Kind: ledger.KindPurchaseInvoice, Dir: credit},
		{Kind: ledger.KindPaymentVoucher, Dir: credit},
	},
	ledger.ClassSafe: nil, // filled in by init, shared with ClassBank
	ledger.ClassBank: nil,
	ledger.ClassPartner: {
		{Kind: ledger.KindPaymentVoucher, Dir: debit, AnyRefund: true},
		{Kind: ledger.KindReceiptVoucher, Dir: credit, AnyRefund: true},
	},
}

func init() {
	classRules[ledger.ClassSafe] = cashRules
	classRules[ledger.ClassBank] = cashRules
}

// refersTo reports whether the transaction references the account, using
// the class-specific linkage: customers and suppliers are the invoice
// counterparty or the voucher entity of their type, safes and banks are the
// settlement target, partner accounts are the voucher entity of type
// current_account.
func refersTo(acc *ledger.Account, txn *ledger.Transaction) bool {
	switch acc.Class {
	case ledger.ClassCustomer:
		switch txn.Kind {
		case ledger.KindSalesInvoice, ledger.KindSalesReturn:
			return txn.AccountID == acc.ID
		case ledger.KindReceiptVoucher, ledger.KindPaymentVoucher:
			return txn.EntityType == ledger.EntityCustomer && txn.AccountID == acc.ID
		}
	case ledger.ClassSupplier:
		switch txn.Kind {
		case ledger.KindPurchaseInvoice, ledger.KindPurchaseReturn:
			return txn.AccountID == acc.ID
		case ledger.KindReceiptVoucher, ledger.KindPaymentVoucher:
			return txn.EntityType == ledger.EntitySupplier && txn.AccountID == acc.ID
		}
	case ledger.ClassSafe, ledger.ClassBank:
		return txn.SettlementID == acc.ID
	case ledger.ClassPartner:
		if txn.Kind.IsVoucher() {
			return txn.EntityType == ledger.EntityPartner && txn.AccountID == acc.ID
		}
	}
	return false
}

// entryFor classifies one transaction's effect on one account. The returned
// amount is always a non-negative magnitude (the transaction net). ok is
// false when the transaction does not touch the account at all.
func entryFor(acc *ledger.Account, txn *ledger.Transaction) (direction, decimal.Decimal, bool) {
	if !refersTo(acc, txn) {
		return 0, decimal.Zero, false
	}
	for _, rule := range classRules[acc.Class] {
		if rule.Kind != txn.Kind {
			continue
		}
		if !rule.AnyRefund && rule.Refund != txn.Refund {
			continue
		}
		return rule.Dir, txn.Totals.Net.Abs(), true
	}
	return 0, decimal.Zero, false
}

// missingRef reports whether the transaction is of a kind that ought to
// carry a counterparty reference for this class but has none. Such records
// are excluded from the fold and surfaced as a data-quality note.
func missingRef(class ledger.AccountClass, txn *ledger.Transaction) bool {
	if txn.AccountID != "" {
		return false
	}
	switch class {
	case ledger.ClassCustomer:
		return txn.Kind == ledger.KindSalesInvoice || txn.Kind == ledger.KindSalesReturn
	case ledger.ClassSupplier:
		return txn.Kind == ledger.KindPurchaseInvoice || txn.Kind == ledger.KindPurchaseReturn
	}
	return false
}
