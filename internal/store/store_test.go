package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafterhq/dafter/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestAccountRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	acc := ledger.Account{
		ID:      "C001",
		Name:    "Al Noor Trading",
		Class:   ledger.ClassCustomer,
		Opening: dec("5000"),
		Branch:  "downtown",
	}
	require.NoError(t, st.CreateAccount(ctx, &acc))

	got, err := st.GetAccount(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, "Al Noor Trading", got.Name)
	assert.Equal(t, ledger.ClassCustomer, got.Class)
	assert.True(t, got.Opening.Equal(dec("5000")))
	assert.Equal(t, "downtown", got.Branch)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateAccount_Duplicate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	acc := ledger.Account{ID: "C001", Name: "x", Class: ledger.ClassCustomer}
	require.NoError(t, st.CreateAccount(ctx, &acc))

	dup := ledger.Account{ID: "C001", Name: "y", Class: ledger.ClassCustomer}
	assert.ErrorIs(t, st.CreateAccount(ctx, &dup), ledger.ErrDuplicateAccount)
}

func TestGetAccount_NotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetAccount(context.Background(), "ghost")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestSetOpeningBalance(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	acc := ledger.Account{ID: "SF-001", Name: "Main safe", Class: ledger.ClassSafe}
	require.NoError(t, st.CreateAccount(ctx, &acc))
	require.NoError(t, st.SetOpeningBalance(ctx, "SF-001", dec("100000")))

	got, err := st.GetAccount(ctx, "SF-001")
	require.NoError(t, err)
	assert.True(t, got.Opening.Equal(dec("100000")))

	assert.ErrorIs(t, st.SetOpeningBalance(ctx, "ghost", dec("1")), ledger.ErrAccountNotFound)
}

func TestListAccounts_Filter(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, acc := range []ledger.Account{
		{ID: "C001", Name: "c1", Class: ledger.ClassCustomer},
		{ID: "C002", Name: "c2", Class: ledger.ClassCustomer, Branch: "harbor"},
		{ID: "S001", Name: "s1", Class: ledger.ClassSupplier},
	} {
		acc := acc
		require.NoError(t, st.CreateAccount(ctx, &acc))
	}

	customers, err := st.ListAccounts(ctx, AccountFilter{Class: ledger.ClassCustomer})
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	harbor, err := st.ListAccounts(ctx, AccountFilter{Branch: "harbor"})
	require.NoError(t, err)
	require.Len(t, harbor, 1)
	assert.Equal(t, "C002", harbor[0].ID)
}

func TestItemRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	item := ledger.Item{
		ID:            "101",
		Name:          "Standing fan",
		Unit:          "pc",
		PurchasePrice: dec("4200"),
		OpeningStock:  dec("50"),
		ReorderLevel:  dec("10"),
	}
	require.NoError(t, st.CreateItem(ctx, &item))

	got, err := st.GetItem(ctx, "101")
	require.NoError(t, err)
	assert.True(t, got.PurchasePrice.Equal(dec("4200")))
	assert.True(t, got.OpeningStock.Equal(dec("50")))

	require.NoError(t, st.SetPurchasePrice(ctx, "101", dec("4500")))
	got, err = st.GetItem(ctx, "101")
	require.NoError(t, err)
	assert.True(t, got.PurchasePrice.Equal(dec("4500")))
}

func TestTransactionRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	txn := ledger.Transaction{
		Kind: ledger.KindSalesInvoice,
		Date: time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
		Totals: ledger.Totals{
			Subtotal: dec("4800"),
			Tax:      dec("720"),
			Net:      dec("5520"),
		},
		AccountID: "C001",
		Branch:    "downtown",
		Lines: []ledger.LineEntry{
			{ItemID: "101", Quantity: dec("1"), UnitPrice: dec("4800"), Amount: dec("4800")},
		},
	}
	require.NoError(t, st.CreateTransaction(ctx, &txn))
	require.NotEmpty(t, txn.ID, "store should mint an id")

	got, err := st.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.KindSalesInvoice, got.Kind)
	assert.Equal(t, txn.Date, got.Date)
	assert.True(t, got.Totals.Net.Equal(dec("5520")))
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "101", got.Lines[0].ItemID)
	assert.True(t, got.Lines[0].Quantity.Equal(dec("1")))
}

func TestListTransactions_Filters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC) }

	txns := []ledger.Transaction{
		{Kind: ledger.KindSalesInvoice, Date: day(1), AccountID: "C001", Totals: ledger.Totals{Net: dec("100")}},
		{Kind: ledger.KindReceiptVoucher, Date: day(5), AccountID: "C001", EntityType: ledger.EntityCustomer,
			SettlementID: "SF-001", Totals: ledger.Totals{Net: dec("40")}},
		{Kind: ledger.KindSalesInvoice, Date: day(9), AccountID: "C002", Totals: ledger.Totals{Net: dec("200")}},
	}
	for i := range txns {
		require.NoError(t, st.CreateTransaction(ctx, &txns[i]))
	}

	sales, err := st.ListTransactions(ctx, TxnFilter{Kind: ledger.KindSalesInvoice})
	require.NoError(t, err)
	assert.Len(t, sales, 2)

	// Settlement target matches the account filter too.
	bySafe, err := st.ListTransactions(ctx, TxnFilter{AccountID: "SF-001"})
	require.NoError(t, err)
	assert.Len(t, bySafe, 1)

	early, err := st.ListTransactions(ctx, TxnFilter{DateTo: "2025-03-05"})
	require.NoError(t, err)
	assert.Len(t, early, 2)
}

func TestLoadSnapshot(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	acc := ledger.Account{ID: "C001", Name: "x", Class: ledger.ClassCustomer}
	require.NoError(t, st.CreateAccount(ctx, &acc))
	item := ledger.Item{ID: "101", Name: "fan", PurchasePrice: dec("4200")}
	require.NoError(t, st.CreateItem(ctx, &item))
	txn := ledger.Transaction{
		Kind: ledger.KindSalesInvoice,
		Date: time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
		AccountID: "C001", Totals: ledger.Totals{Net: dec("100")},
	}
	require.NoError(t, st.CreateTransaction(ctx, &txn))

	snap, err := st.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Accounts, 1)
	assert.Len(t, snap.Items, 1)
	assert.Len(t, snap.Transactions, 1)
}
