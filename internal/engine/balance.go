package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/ledger"
)

// ComputeBalance reconstructs one account's balance as of an inclusive
// cutoff date by folding every matching transaction over the opening
// balance: balance = opening + totalDebit - totalCredit.
//
// Malformed transactions never fail the fold; records missing their
// counterparty reference are excluded and noted as warnings. The only error
// is an unparseable asOf date.
func ComputeBalance(acc *ledger.Account, txns []ledger.Transaction, asOf string) (*ledger.AccountBalance, error) {
	cutoff, err := ledger.ParseDate("as_of", asOf)
	if err != nil {
		return nil, err
	}
	return computeBalanceAt(acc, txns, cutoff), nil
}

// computeBalanceAt is the already-validated core, shared with the statement
// composer so it parses dates once per report rather than once per line.
func computeBalanceAt(acc *ledger.Account, txns []ledger.Transaction, cutoff time.Time) *ledger.AccountBalance {
	res := &ledger.AccountBalance{
		AccountID: acc.ID,
		AsOf:      cutoff,
		Opening:   acc.Opening,
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i := range txns {
		txn := &txns[i]
		if txn.Date.After(cutoff) {
			continue
		}
		if missingRef(acc.Class, txn) {
			res.Warnings = append(res.Warnings, ledger.Warnf(
				ledger.WarnMissingAccountRef, txn.ID,
				"%s dated %s has no counterparty reference", txn.Kind, txn.Date.Format(ledger.DateLayout)))
			continue
		}
		dir, amount, ok := entryFor(acc, txn)
		if !ok {
			continue
		}
		switch dir {
		case debit:
			totalDebit = totalDebit.Add(amount)
		case credit:
			totalCredit = totalCredit.Add(amount)
		}
	}

	res.TotalDebit = totalDebit
	res.TotalCredit = totalCredit
	res.Balance = acc.Opening.Add(totalDebit).Sub(totalCredit)
	return res
}
