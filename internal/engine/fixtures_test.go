package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dafterhq/dafter/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// requireDec compares by numeric value, not internal representation.
func requireDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(dec(want)), "want %s, got %s", want, got)
}

func customer(id, opening string) *ledger.Account {
	return &ledger.Account{ID: id, Name: "customer " + id, Class: ledger.ClassCustomer, Opening: dec(opening)}
}

func supplier(id, opening string) *ledger.Account {
	return &ledger.Account{ID: id, Name: "supplier " + id, Class: ledger.ClassSupplier, Opening: dec(opening)}
}

func safe(id, opening string) *ledger.Account {
	return &ledger.Account{ID: id, Name: "safe " + id, Class: ledger.ClassSafe, Opening: dec(opening)}
}

func partner(id, opening string) *ledger.Account {
	return &ledger.Account{ID: id, Name: "partner " + id, Class: ledger.ClassPartner, Opening: dec(opening)}
}

func invoice(kind ledger.Kind, day time.Time, account, subtotal, tax string) ledger.Transaction {
	sub, tx := dec(subtotal), dec(tax)
	return ledger.Transaction{
		Kind:      kind,
		Date:      day,
		AccountID: account,
		Totals:    ledger.Totals{Subtotal: sub, Tax: tx, Net: sub.Add(tx)},
	}
}

func voucher(kind ledger.Kind, day time.Time, entity ledger.EntityType, account, safeID, amount string) ledger.Transaction {
	return ledger.Transaction{
		Kind:         kind,
		Date:         day,
		AccountID:    account,
		EntityType:   entity,
		SettlementID: safeID,
		Totals:       ledger.Totals{Net: dec(amount)},
	}
}

func stockDoc(kind ledger.Kind, day time.Time, itemID, qty string) ledger.Transaction {
	return ledger.Transaction{
		Kind:  kind,
		Date:  day,
		Lines: []ledger.LineEntry{{ItemID: itemID, Quantity: dec(qty)}},
	}
}

func itemLine(itemID, qty, price string) ledger.LineEntry {
	q, p := dec(qty), dec(price)
	return ledger.LineEntry{ItemID: itemID, Quantity: q, UnitPrice: p, Amount: q.Mul(p)}
}

func fan(id, price, openingStock string) ledger.Item {
	return ledger.Item{ID: id, Name: "fan " + id, Unit: "pc", PurchasePrice: dec(price), OpeningStock: dec(openingStock)}
}
