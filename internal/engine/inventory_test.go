package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafterhq/dafter/internal/ledger"
)

func TestComputeInventoryValue(t *testing.T) {
	items := []ledger.Item{fan("101", "4200", "50")}

	sale := invoice(ledger.KindSalesInvoice, date(2025, time.February, 10), "C001", "4800", "720")
	sale.Lines = []ledger.LineEntry{itemLine("101", "1", "4800")}
	txns := []ledger.Transaction{
		stockDoc(ledger.KindStoreReceipt, date(2025, time.March, 1), "101", "10"),
		sale,
	}

	report, err := ComputeInventoryValue(items, txns, "2025-12-31")
	require.NoError(t, err)
	require.Len(t, report.Lines, 1)

	line := report.Lines[0]
	requireDec(t, "59", line.Quantity) // 50 + 10 - 1
	requireDec(t, "4200", line.UnitCost)
	requireDec(t, "247800", line.Value)
	requireDec(t, "247800", report.TotalValue)
	assert.Empty(t, report.Warnings)
}

func TestComputeInventoryValue_TransferNeutral(t *testing.T) {
	items := []ledger.Item{fan("101", "4200", "50")}

	before, err := ComputeInventoryValue(items, nil, "2025-12-31")
	require.NoError(t, err)

	transfer := stockDoc(ledger.KindStoreTransfer, date(2025, time.March, 5), "101", "25")
	transfer.FromStore = "main"
	transfer.ToStore = "branch-2"

	after, err := ComputeInventoryValue(items, []ledger.Transaction{transfer}, "2025-12-31")
	require.NoError(t, err)

	requireDec(t, before.Lines[0].Quantity.String(), after.Lines[0].Quantity)
	requireDec(t, before.TotalValue.String(), after.TotalValue)
}

// Over-issuance keeps its negative quantity on the line (the caller must
// see it) but contributes zero value.
func TestComputeInventoryValue_NegativeQuantity(t *testing.T) {
	items := []ledger.Item{fan("101", "4200", "5")}
	txns := []ledger.Transaction{
		stockDoc(ledger.KindStoreIssue, date(2025, time.March, 1), "101", "8"),
	}

	report, err := ComputeInventoryValue(items, txns, "2025-12-31")
	require.NoError(t, err)

	line := report.Lines[0]
	requireDec(t, "-3", line.Quantity)
	requireDec(t, "0", line.Value)
	requireDec(t, "0", report.TotalValue)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, ledger.WarnNegativeStock, report.Warnings[0].Code)
	assert.Equal(t, "101", report.Warnings[0].Subject)
}

func TestComputeInventoryValue_UnknownItemLine(t *testing.T) {
	items := []ledger.Item{fan("101", "4200", "50")}
	txns := []ledger.Transaction{
		stockDoc(ledger.KindStoreReceipt, date(2025, time.March, 1), "999", "10"),
	}

	report, err := ComputeInventoryValue(items, txns, "2025-12-31")
	require.NoError(t, err)

	requireDec(t, "50", report.Lines[0].Quantity)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, ledger.WarnUnknownItem, report.Warnings[0].Code)
}

func TestComputeInventoryValue_CutoffExcludesLaterMovements(t *testing.T) {
	items := []ledger.Item{fan("101", "4200", "50")}
	txns := []ledger.Transaction{
		stockDoc(ledger.KindStoreReceipt, date(2025, time.March, 1), "101", "10"),
		stockDoc(ledger.KindStoreIssue, date(2025, time.June, 1), "101", "30"),
	}

	report, err := ComputeInventoryValue(items, txns, "2025-03-31")
	require.NoError(t, err)
	requireDec(t, "60", report.Lines[0].Quantity)
}

func TestComputeInventoryValue_InvalidDate(t *testing.T) {
	_, err := ComputeInventoryValue(nil, nil, "soon")
	var verr *ledger.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestComputeReorderReport(t *testing.T) {
	low := fan("101", "4200", "12")
	low.ReorderLevel = dec("10")
	fine := fan("102", "6500", "20")
	fine.ReorderLevel = dec("5")
	unset := fan("103", "100", "0") // no threshold, never flagged

	txns := []ledger.Transaction{
		stockDoc(ledger.KindStoreIssue, date(2025, time.March, 1), "101", "3"),
	}

	report, err := ComputeReorderReport([]ledger.Item{low, fine, unset}, txns, "2025-12-31")
	require.NoError(t, err)

	require.Len(t, report.Lines, 1)
	assert.Equal(t, "101", report.Lines[0].ItemID)
	requireDec(t, "9", report.Lines[0].Quantity)
	requireDec(t, "10", report.Lines[0].ReorderLevel)
}
