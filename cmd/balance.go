package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dafterhq/dafter/internal/engine"
	"github.com/dafterhq/dafter/internal/ledger"
	"github.com/dafterhq/dafter/internal/store"
)

var balanceAsOf string

var balanceCmd = &cobra.Command{
	Use:   "balance <account-id>",
	Short: "Reconstruct an account balance as of a date",
	Args:  cobra.ExactArgs(1),
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
		acc, err := st.GetAccount(ctx, args[0])
		if err != nil {
			return err
		}
		txns, err := st.ListTransactions(ctx, store.TxnFilter{})
		if err != nil {
			return err
		}

		asOf := balanceAsOf
		if asOf == "" {
			asOf = asOfOrToday()
		}
		bal, err := engine.ComputeBalance(acc, txns, asOf)
		if err != nil {
			return err
		}

		printTitle(acc.Name, fmt.Sprintf("%s %s, as of %s",
			ledger.ClassLabel(acc.Class), acc.ID, bal.AsOf.Format(ledger.DateLayout)))
		printLine("Opening balance", bal.Opening)
		printLine("Total debit", bal.TotalDebit)
		printLine("Total credit", bal.TotalCredit)
		printRule()
		printLine("Balance", bal.Balance)
		printWarnings(bal.Warnings)
		return nil
	},
}

func init() {
	balanceCmd.Flags().StringVar(&balanceAsOf, "as-of", "", "Balance date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(balanceCmd)
}
