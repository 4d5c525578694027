package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dafterhq/dafter/internal/ledger"
)

// inboundKinds add stock; outboundKinds remove it. StoreTransfer appears in
// neither: it moves stock between stores, and this engine values the
// business as a whole, so transfers net to zero.
var inboundKinds = map[ledger.Kind]bool{
	ledger.KindPurchaseInvoice: true,
	ledger.KindSalesReturn:     true,
	ledger.KindStoreReceipt:    true,
}

var outboundKinds = map[ledger.Kind]bool{
	ledger.KindSalesInvoice:   true,
	ledger.KindPurchaseReturn: true,
	ledger.KindStoreIssue:     true,
}

// ComputeInventoryValue derives every item's quantity as of the cutoff and
// values it at the item's current purchase price.
//
// A negative derived quantity means over-issuance somewhere in the history.
// It stays negative on the snapshot line (the caller must see it) but
// contributes zero value, so one bad item cannot drag the balance sheet
// down by phantom negative stock.
func ComputeInventoryValue(items []ledger.Item, txns []ledger.Transaction, asOf string) (*ledger.InventoryReport, error) {
	cutoff, err := ledger.ParseDate("as_of", asOf)
	if err != nil {
		return nil, err
	}
	return computeInventoryAt(items, txns, cutoff), nil
}

func computeInventoryAt(items []ledger.Item, txns []ledger.Transaction, cutoff time.Time) *ledger.InventoryReport {
	deltas, warnings := movementDeltas(items, txns, cutoff)

	report := &ledger.InventoryReport{AsOf: cutoff, Warnings: warnings}
	report.TotalValue = decimal.Zero
	for _, item := range items {
		qty := item.OpeningStock.Add(deltas[item.ID])
		value := decimal.Zero
		if qty.IsPositive() {
			value = qty.Mul(item.PurchasePrice)
		}
		if qty.IsNegative() {
			report.Warnings = append(report.Warnings, ledger.Warnf(
				ledger.WarnNegativeStock, item.ID,
				"derived quantity %s as of %s", qty, cutoff.Format(ledger.DateLayout)))
		}
		report.Lines = append(report.Lines, ledger.InventorySnapshot{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: qty,
			UnitCost: item.PurchasePrice,
			Value:    value,
		})
		report.TotalValue = report.TotalValue.Add(value)
	}
	return report
}

// movementDeltas folds all item lines dated on or before the cutoff into a
// per-item signed quantity delta. Lines naming an unknown item are skipped
// with a warning rather than failing the report.
func movementDeltas(items []ledger.Item, txns []ledger.Transaction, cutoff time.Time) (map[string]decimal.Decimal, []ledger.Warning) {
	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.ID] = true
	}

	deltas := make(map[string]decimal.Decimal, len(items))
	var warnings []ledger.Warning
	for i := range txns {
		txn := &txns[i]
		if txn.Date.After(cutoff) {
			continue
		}
		var sign decimal.Decimal
		switch {
		case inboundKinds[txn.Kind]:
			sign = decimal.NewFromInt(1)
		case outboundKinds[txn.Kind]:
			sign = decimal.NewFromInt(-1)
		default:
			continue
		}
		for _, line := range txn.Lines {
			if line.ItemID == "" {
				continue
			}
			if !known[line.ItemID] {
				warnings = append(warnings, ledger.Warnf(
					ledger.WarnUnknownItem, txn.ID,
					"line references unknown item %q", line.ItemID))
				continue
			}
			deltas[line.ItemID] = deltas[line.ItemID].Add(line.Quantity.Mul(sign))
		}
	}
	return deltas, warnings
}

// ComputeReorderReport lists items whose derived quantity as of the cutoff
// is at or below their reorder threshold. Items with no threshold set are
// never flagged.
func ComputeReorderReport(items []ledger.Item, txns []ledger.Transaction, asOf string) (*ledger.ReorderReport, error) {
	cutoff, err := ledger.ParseDate("as_of", asOf)
	if err != nil {
		return nil, err
	}
	deltas, warnings := movementDeltas(items, txns, cutoff)

	report := &ledger.ReorderReport{AsOf: cutoff, Warnings: warnings}
	for _, item := range items {
		if !item.ReorderLevel.IsPositive() {
			continue
		}
		qty := item.OpeningStock.Add(deltas[item.ID])
		if qty.LessThanOrEqual(item.ReorderLevel) {
			report.Lines = append(report.Lines, ledger.ReorderLine{
				ItemID:       item.ID,
				Name:         item.Name,
				Quantity:     qty,
				ReorderLevel: item.ReorderLevel,
			})
		}
	}
	return report, nil
}
