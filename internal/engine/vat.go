package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/ledger"
)

// ComputeVatDeclaration nets output tax (sales minus sales returns) against
// input tax (purchases minus purchase returns) for a period, optionally
// restricted to one branch. A negative net is a refund position and is
// returned as-is.
func ComputeVatDeclaration(txns []ledger.Transaction, periodStart, periodEnd, branch string) (*ledger.VatDeclaration, error) {
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
	return computeVatAt(txns, start, end, branch), nil
}

func computeVatAt(txns []ledger.Transaction, start, end time.Time, branch string) *ledger.VatDeclaration {
	decl := &ledger.VatDeclaration{
		PeriodStart: start,
		PeriodEnd:   end,
		Branch:      branch,
		OutputVat:   decimal.Zero,
		InputVat:    decimal.Zero,
	}
	for i := range txns {
		txn := &txns[i]
		if !inPeriod(txn.Date, start, end) {
			continue
		}
		if branch != "" && txn.Branch != branch {
			continue
		}
		switch txn.Kind {
		case ledger.KindSalesInvoice:
			decl.OutputVat = decl.OutputVat.Add(txn.Totals.Tax)
		case ledger.KindSalesReturn:
			decl.OutputVat = decl.OutputVat.Sub(txn.Totals.Tax)
		case ledger.KindPurchaseInvoice:
			decl.InputVat = decl.InputVat.Add(txn.Totals.Tax)
		case ledger.KindPurchaseReturn:
			decl.InputVat = decl.InputVat.Sub(txn.Totals.Tax)
		}
	}
	decl.NetVat = decl.OutputVat.Sub(decl.InputVat)
	return decl
}

// inPeriod checks start <= date <= end at day granularity.
func inPeriod(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}
