package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/ledger"
)

// reconcileTolerance bounds the acceptable drift in the accounting
// equation. Comparisons are never exact: statement lines are sums of
// independently rounded figures.
var reconcileTolerance = decimal.RequireFromString("0.01")

// ComposeIncomeStatement computes the period result with the periodic
// inventory method: COGS = inventory at the day before the period start,
// plus net purchases, minus inventory at the period end.
func ComposeIncomeStatement(items []ledger.Item, txns []ledger.Transaction, periodStart, periodEnd string) (*ledger.IncomeStatement, error) {
	start, err := ledger.ParseDate("period_start", periodStart)
	if err != nil {
		return nil, err
	}
	end, err := ledger.ParseDate("period_end", periodEnd)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, &ledger.ValidationError{
			Param: "period_end", Value: periodEnd, Reason: "period ends before it starts",
		}
	}
	return composeIncomeAt(items, txns, start, end), nil
}

func composeIncomeAt(items []ledger.Item, txns []ledger.Transaction, start, end time.Time) *ledger.IncomeStatement {
	is := &ledger.IncomeStatement{PeriodStart: start, PeriodEnd: end}

	netSales := decimal.Zero
	netPurchases := decimal.Zero
	expenses := decimal.Zero
	for i := range txns {
		txn := &txns[i]
		if !inPeriod(txn.Date, start, end) {
			continue
		}
		switch txn.Kind {
		case ledger.KindSalesInvoice:
			netSales = netSales.Add(txn.Totals.Subtotal)
		case ledger.KindSalesReturn:
			netSales = netSales.Sub(txn.Totals.Subtotal)
		case ledger.KindPurchaseInvoice:
			netPurchases = netPurchases.Add(txn.Totals.Subtotal)
		case ledger.KindPurchaseReturn:
			netPurchases = netPurchases.Sub(txn.Totals.Subtotal)
		case ledger.KindPaymentVoucher:
			if txn.EntityType == ledger.EntityExpense {
				expenses = expenses.Add(txn.Totals.Net)
			}
		}
	}

	opening := computeInventoryAt(items, txns, start.AddDate(0, 0, -1))
	closing := computeInventoryAt(items, txns, end)

	is.NetSales = netSales
	is.NetPurchases = netPurchases
	is.OpeningInventory = opening.TotalValue
	is.ClosingInventory = closing.TotalValue
	is.COGS = opening.TotalValue.Add(netPurchases).Sub(closing.TotalValue)
	is.GrossProfit = netSales.Sub(is.COGS)
	is.TotalExpenses = expenses
	is.NetProfit = is.GrossProfit.Sub(expenses)
	is.Warnings = mergeWarnings(nil, opening.Warnings, closing.Warnings)
	return is
}

// ComposeBalanceSheet composes the statement of financial position as of a
// date. Capital is a standing configuration value; net profit covers the
// year-to-date period ending at the cutoff.
//
// An unbalanced equation is reported through the Reconciled flag and a
// warning, never an error: imbalance is the diagnostic the caller asked for.
func ComposeBalanceSheet(snap *ledger.Snapshot, asOf string, capital decimal.Decimal) (*ledger.BalanceSheet, error) {
	cutoff, err := ledger.ParseDate("as_of", asOf)
	if err != nil {
		return nil, err
	}

	yearStart := time.Date(cutoff.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	bs := &ledger.BalanceSheet{AsOf: cutoff}
	var collected [][]ledger.Warning
	collected = append(collected, unknownAccountWarnings(snap, cutoff))

	// Assets: cash on hand, amounts customers owe, and stock value. Negative
	// cash and customer credit balances are excluded, not netted against the
	// other side.
	cash := decimal.Zero
	for _, acc := range snap.Accounts {
		if !acc.IsCash() {
			continue
		}
		bal := computeBalanceAt(&acc, snap.Transactions, cutoff)
		collected = append(collected, bal.Warnings)
		if bal.Balance.IsNegative() {
			bs.Warnings = append(bs.Warnings, ledger.Warnf(
				ledger.WarnNegativeCash, acc.ID,
				"%s balance %s as of %s", ledger.ClassLabel(acc.Class), bal.Balance, cutoff.Format(ledger.DateLayout)))
			continue
		}
		cash = cash.Add(bal.Balance)
	}

	receivables := decimal.Zero
	for _, acc := range snap.AccountsOf(ledger.ClassCustomer) {
		bal := computeBalanceAt(&acc, snap.Transactions, cutoff)
		collected = append(collected, bal.Warnings)
		if bal.Balance.IsPositive() {
			receivables = receivables.Add(bal.Balance)
		}
	}

	inventory := computeInventoryAt(snap.Items, snap.Transactions, cutoff)
	collected = append(collected, inventory.Warnings)

	bs.Cash = cash
	bs.Receivables = receivables
	bs.Inventory = inventory.TotalValue
	bs.Assets = cash.Add(receivables).Add(inventory.TotalValue)

	// Liabilities: what suppliers are owed, plus VAT collected but not yet
	// remitted. A supplier balance in the "we owe them" direction is
	// negative under the classification table, so the payable is its
	// magnitude; balances the other way are not liabilities.
	payables := decimal.Zero
	for _, acc := range snap.AccountsOf(ledger.ClassSupplier) {
		bal := computeBalanceAt(&acc, snap.Transactions, cutoff)
		collected = append(collected, bal.Warnings)
		if bal.Balance.IsNegative() {
			payables = payables.Add(bal.Balance.Abs())
		}
	}

	vat := computeVatAt(snap.Transactions, yearStart, cutoff, "")
	vatPayable := vat.NetVat
	if vatPayable.IsNegative() {
		// Refund position: not a payable.
		vatPayable = decimal.Zero
	}

	bs.Payables = payables
	bs.VatPayable = vatPayable
	bs.Liabilities = payables.Add(vatPayable)

	// Equity: standing capital, partner current accounts at their signed
	// balances, and year-to-date profit.
	partners := decimal.Zero
	for _, acc := range snap.AccountsOf(ledger.ClassPartner) {
		bal := computeBalanceAt(&acc, snap.Transactions, cutoff)
		collected = append(collected, bal.Warnings)
		partners = partners.Add(bal.Balance)
	}

	income := composeIncomeAt(snap.Items, snap.Transactions, yearStart, cutoff)
	collected = append(collected, income.Warnings)

	bs.Capital = capital
	bs.PartnerAccounts = partners
	bs.NetProfit = income.NetProfit
	bs.Equity = capital.Add(partners).Add(income.NetProfit)

	diff := bs.Assets.Sub(bs.Liabilities.Add(bs.Equity))
	bs.Reconciled = diff.Abs().LessThan(reconcileTolerance)
	if !bs.Reconciled {
		bs.Warnings = append(bs.Warnings, ledger.Warnf(
			ledger.WarnNotReconciled, "",
			"assets %s != liabilities %s + equity %s (diff %s)",
			bs.Assets, bs.Liabilities, bs.Equity, diff))
	}

	bs.Warnings = mergeWarnings(bs.Warnings, collected...)
	return bs, nil
}

// unknownAccountWarnings flags records whose counterparty or settlement
// reference names no account in the snapshot. Such records contribute to no
// balance, so without the warning the composed statement would silently
// understate a side.
func unknownAccountWarnings(snap *ledger.Snapshot, cutoff time.Time) []ledger.Warning {
	var out []ledger.Warning
	for i := range snap.Transactions {
		txn := &snap.Transactions[i]
		if txn.Date.After(cutoff) {
			continue
		}
		if id := txn.SettlementID; id != "" {
			if _, ok := snap.FindAccount(id); !ok {
				out = append(out, ledger.Warnf(ledger.WarnUnknownAccount, txn.ID,
					"settlement references unknown account %q", id))
			}
		}
		if id := txn.AccountID; id != "" && expectsAccount(txn) {
			if _, ok := snap.FindAccount(id); !ok {
				out = append(out, ledger.Warnf(ledger.WarnUnknownAccount, txn.ID,
					"references unknown account %q", id))
			}
		}
	}
	return out
}

// expectsAccount reports whether the record's AccountID should name a real
// account. Expense vouchers carry a free-form expense label there instead.
func expectsAccount(txn *ledger.Transaction) bool {
	if txn.Kind.IsInvoice() {
		return true
	}
	if txn.Kind.IsVoucher() {
		switch txn.EntityType {
		case ledger.EntityCustomer, ledger.EntitySupplier, ledger.EntityPartner:
			return true
		}
	}
	return false
}

// mergeWarnings appends warning slices onto dst, dropping duplicates.
// Statement composition reconstructs many accounts over the same snapshot,
// so the same bad record would otherwise be reported once per account.
func mergeWarnings(dst []ledger.Warning, batches ...[]ledger.Warning) []ledger.Warning {
	key := func(w ledger.Warning) string {
		return string(w.Code) + "|" + w.Subject + "|" + w.Detail
	}
	seen := make(map[string]bool, len(dst))
	for _, w := range dst {
		seen[key(w)] = true
	}
	for _, batch := range batches {
		for _, w := range batch {
			k := key(w)
			if seen[k] {
				continue
			}
			seen[k] = true
			dst = append(dst, w)
		}
	}
	return dst
}
