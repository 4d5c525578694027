package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dafterhq/dafter/internal/ledger"
	"github.com/dafterhq/dafter/internal/store"
)

var (
	txnKind     string
	txnDate     string
	txnSubtotal string
	txnDiscount string
	txnTax      string
	txnNet      string
	txnAccount  string
	txnEntity   string
	txnRefund   bool
	txnSettle   string
	txnBranch   string
	txnFrom     string
	txnTo       string
	txnLines    []string

	txnListKind    string
	txnListAccount string
	txnListFrom    string
	txnListTo      string
)

var txnCmd = &cobra.Command{
	Use:   "txn",
	Short: "Record and list transactions (append-only)",
}

var txnAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a transaction to the books",
	Long: "Appends one transaction record. Records are immutable: there is no\n" +
		"edit and no delete, corrections are entered as new records.\n\n" +
		"Lines use item=qty@price, e.g. --line 101=5@4200.",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := ledger.ParseDate("date", txnDate)
		if err != nil {
			return err
		}
		subtotal, err := parseDecFlag("subtotal", txnSubtotal)
		if err != nil {
			return err
		}
		discount, err := parseDecFlag("discount", txnDiscount)
		if err != nil {
			return err
		}
		tax, err := parseDecFlag("tax", txnTax)
		if err != nil {
			return err
		}
		net, err := parseDecFlag("net", txnNet)
		if err != nil {
			return err
		}
		if net.IsZero() {
			net = subtotal.Sub(discount).Add(tax)
		}

		lines, err := parseLines(txnLines)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		txn := ledger.Transaction{
			Kind:         ledger.Kind(txnKind),
			Date:         date,
			Totals:       ledger.Totals{Subtotal: subtotal, Discount: discount, Tax: tax, Net: net},
			AccountID:    txnAccount,
			EntityType:   ledger.EntityType(txnEntity),
			Refund:       txnRefund,
			SettlementID: txnSettle,
			Branch:       txnBranch,
			FromStore:    txnFrom,
			ToStore:      txnTo,
			Lines:        lines,
		}
		if err := st.CreateTransaction(context.Background(), &txn); err != nil {
			return err
		}
		fmt.Printf("recorded %s %s dated %s, net %s\n",
			txn.Kind, txn.ID, txn.Date.Format(ledger.DateLayout), money(txn.Totals.Net))
		return nil
	},
}

var txnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
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

		txns, err := st.ListTransactions(context.Background(), store.TxnFilter{
			Kind:      ledger.Kind(txnListKind),
			AccountID: txnListAccount,
			DateFrom:  txnListFrom,
			DateTo:    txnListTo,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%-36s %-18s %-12s %12s %-12s\n", "ID", "KIND", "DATE", "NET", "ACCOUNT")
		for _, txn := range txns {
			fmt.Printf("%-36s %-18s %-12s %12s %-12s\n",
				txn.ID, txn.Kind, txn.Date.Format(ledger.DateLayout),
				money(txn.Totals.Net), txn.AccountID)
		}
		return nil
	},
}

// parseLines turns repeated item=qty@price flags into line entries.
func parseLines(raw []string) ([]ledger.LineEntry, error) {
	var lines []ledger.LineEntry
	for _, spec := range raw {
		item, rest, ok := strings.Cut(spec, "=")
		if !ok || item == "" {
			return nil, fmt.Errorf("line %q: want item=qty@price", spec)
		}
		qtyStr, priceStr, _ := strings.Cut(rest, "@")
		qty, err := parseDecFlag("line", qtyStr)
		if err != nil {
			return nil, err
		}
		price, err := parseDecFlag("line", priceStr)
		if err != nil {
			return nil, err
		}
		lines = append(lines, ledger.LineEntry{
			ItemID:    item,
			Quantity:  qty,
			UnitPrice: price,
			Amount:    qty.Mul(price),
		})
	}
	return lines, nil
}

func init() {
	txnAddCmd.Flags().StringVar(&txnKind, "kind", "", "Transaction kind")
	txnAddCmd.Flags().StringVar(&txnDate, "date", "", "Date (YYYY-MM-DD)")
	txnAddCmd.Flags().StringVar(&txnSubtotal, "subtotal", "", "Subtotal before discount and tax")
	txnAddCmd.Flags().StringVar(&txnDiscount, "discount", "", "Discount")
	txnAddCmd.Flags().StringVar(&txnTax, "tax", "", "Tax")
	txnAddCmd.Flags().StringVar(&txnNet, "net", "", "Net total (default subtotal - discount + tax)")
	txnAddCmd.Flags().StringVar(&txnAccount, "account", "", "Counterparty account id")
	txnAddCmd.Flags().StringVar(&txnEntity, "entity", "", "Voucher entity type: customer, supplier, current_account, expense")
	txnAddCmd.Flags().BoolVar(&txnRefund, "refund", false, "Voucher reverses the usual direction")
	txnAddCmd.Flags().StringVar(&txnSettle, "settle", "", "Safe or bank id for cash settlement")
	txnAddCmd.Flags().StringVar(&txnBranch, "branch", "", "Branch")
	txnAddCmd.Flags().StringVar(&txnFrom, "from-store", "", "Source store (transfers)")
	txnAddCmd.Flags().StringVar(&txnTo, "to-store", "", "Destination store (transfers)")
	txnAddCmd.Flags().StringArrayVar(&txnLines, "line", nil, "Item line as item=qty@price (repeatable)")
	txnAddCmd.MarkFlagRequired("kind")
	txnAddCmd.MarkFlagRequired("date")

	txnListCmd.Flags().StringVar(&txnListKind, "kind", "", "Filter by kind")
	txnListCmd.Flags().StringVar(&txnListAccount, "account", "", "Filter by counterparty or settlement account")
	txnListCmd.Flags().StringVar(&txnListFrom, "from", "", "Earliest date (YYYY-MM-DD)")
	txnListCmd.Flags().StringVar(&txnListTo, "to", "", "Latest date (YYYY-MM-DD)")

	txnCmd.AddCommand(txnAddCmd)
	txnCmd.AddCommand(txnListCmd)
	rootCmd.AddCommand(txnCmd)
}
