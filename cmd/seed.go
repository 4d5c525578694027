package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dafterhq/dafter/internal/ledger"
)

// seedCmd loads a small demonstration books file: a trading business with
// one branch, a safe, customers, a supplier, and a month of activity.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demonstration books into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		year := time.Now().UTC().Year()
		day := func(month time.Month, d int) time.Time {
			return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		}
		dec := decimal.RequireFromString

		accounts := []ledger.Account{
			{ID: "SF-001", Name: "Main safe", Class: ledger.ClassSafe, Opening: dec("100000")},
			{ID: "BK-001", Name: "Operating bank account", Class: ledger.ClassBank, Opening: dec("50000")},
			{ID: "C001", Name: "Al Noor Trading", Class: ledger.ClassCustomer, Opening: dec("5000")},
			{ID: "C002", Name: "Sunrise Retail", Class: ledger.ClassCustomer},
			{ID: "S001", Name: "Delta Wholesale", Class: ledger.ClassSupplier},
			{ID: "CA-002", Name: "Partner current account", Class: ledger.ClassPartner, Opening: dec("15000")},
		}
		for i := range accounts {
			if err := st.CreateAccount(ctx, &accounts[i]); err != nil {
				return err
			}
		}

		items := []ledger.Item{
			{ID: "101", Name: "Standing fan 18\"", Unit: "pc", PurchasePrice: dec("4200"), OpeningStock: dec("50"), ReorderLevel: dec("10")},
			{ID: "102", Name: "Ceiling fan 56\"", Unit: "pc", PurchasePrice: dec("6500"), OpeningStock: dec("20"), ReorderLevel: dec("5")},
		}
		for i := range items {
			if err := st.CreateItem(ctx, &items[i]); err != nil {
				return err
			}
		}

		txns := []ledger.Transaction{
			{
				Kind: ledger.KindPurchaseInvoice, Date: day(time.February, 3),
				Totals:    ledger.Totals{Subtotal: dec("65000"), Tax: dec("9750"), Net: dec("74750")},
				AccountID: "S001",
				Lines:     []ledger.LineEntry{{ItemID: "102", Quantity: dec("10"), UnitPrice: dec("6500"), Amount: dec("65000")}},
			},
			{
				Kind: ledger.KindSalesInvoice, Date: day(time.February, 10),
				Totals:    ledger.Totals{Subtotal: dec("4800"), Tax: dec("720"), Net: dec("5520")},
				AccountID: "C001",
				Lines:     []ledger.LineEntry{{ItemID: "101", Quantity: dec("1"), UnitPrice: dec("4800"), Amount: dec("4800")}},
			},
			{
				Kind: ledger.KindReceiptVoucher, Date: day(time.February, 20),
				Totals:     ledger.Totals{Net: dec("5000")},
				AccountID:  "C001",
				EntityType: ledger.EntityCustomer, SettlementID: "SF-001",
			},
			{
				Kind: ledger.KindPaymentVoucher, Date: day(time.February, 25),
				Totals:     ledger.Totals{Net: dec("8000")},
				AccountID:  "rent",
				EntityType: ledger.EntityExpense, SettlementID: "SF-001",
			},
			{
				Kind: ledger.KindStoreReceipt, Date: day(time.March, 1),
				Lines: []ledger.LineEntry{{ItemID: "101", Quantity: dec("10")}},
			},
			{
				Kind: ledger.KindStoreTransfer, Date: day(time.March, 5),
				FromStore: "main", ToStore: "branch-2",
				Lines: []ledger.LineEntry{{ItemID: "102", Quantity: dec("4")}},
			},
		}
		for i := range txns {
			if err := st.CreateTransaction(ctx, &txns[i]); err != nil {
				return err
			}
		}

		fmt.Printf("seeded %d accounts, %d items, %d transactions\n", len(accounts), len(items), len(txns))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
