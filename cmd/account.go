package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dafterhq/dafter/internal/ledger"
	"github.com/dafterhq/dafter/internal/store"
)

var (
	accountID      string
	accountName    string
	accountClass   string
	accountOpening string
	accountBranch  string
	accountFilter  string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		opening := decimal.Zero
		if accountOpening != "" {
			var err error
			opening, err = decimal.NewFromString(accountOpening)
			if err != nil {
				return fmt.Errorf("opening balance %q: %w", accountOpening, err)
			}
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

		acc := ledger.Account{
			ID:      accountID,
			Name:    accountName,
			Class:   ledger.AccountClass(accountClass),
			Opening: opening,
			Branch:  accountBranch,
		}
		if err := st.CreateAccount(context.Background(), &acc); err != nil {
			return err
		}
		fmt.Printf("created %s %s (%s)\n", ledger.ClassLabel(acc.Class), acc.ID, acc.Name)
		return nil
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
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

		accounts, err := st.ListAccounts(context.Background(), store.AccountFilter{
			Class: ledger.AccountClass(accountFilter),
		})
		if err != nil {
			return err
		}

		fmt.Printf("%-12s %-26s %-24s %12s %s\n", "ID", "NAME", "CLASS", "OPENING", "BRANCH")
		for _, acc := range accounts {
			fmt.Printf("%-12s %-26s %-24s %12s %s\n",
				acc.ID, clip(acc.Name, 26), ledger.ClassLabel(acc.Class), money(acc.Opening), acc.Branch)
		}
		return nil
	},
}

func init() {
	accountAddCmd.Flags().StringVar(&accountID, "id", "", "Account id")
	accountAddCmd.Flags().StringVar(&accountName, "name", "", "Account name")
	accountAddCmd.Flags().StringVar(&accountClass, "class", "", "Class: customer, supplier, safe, bank, current_account")
	accountAddCmd.Flags().StringVar(&accountOpening, "opening", "", "Opening balance")
	accountAddCmd.Flags().StringVar(&accountBranch, "branch", "", "Branch affiliation")
	accountAddCmd.MarkFlagRequired("id")
	accountAddCmd.MarkFlagRequired("name")
	accountAddCmd.MarkFlagRequired("class")

	accountListCmd.Flags().StringVar(&accountFilter, "class", "", "Filter by class")

	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
	rootCmd.AddCommand(accountCmd)
}
