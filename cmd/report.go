package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dafterhq/dafter/internal/config"
	"github.com/dafterhq/dafter/internal/engine"
	"github.com/dafterhq/dafter/internal/ledger"
)

var (
	reportAsOf   string
	reportFrom   string
	reportTo     string
	reportBranch string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compose financial statements from the books",
}

var balanceSheetCmd = &cobra.Command{
	Use:   "balance-sheet",
	Short: "Balance sheet as of a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, snap, err := loadSnapshot()
		if err != nil {
			return err
		}
		capital, err := cfg.CapitalAmount()
		if err != nil {
			return err
		}

		bs, err := engine.ComposeBalanceSheet(snap, asOfOrToday(), capital)
		if err != nil {
			return err
		}

		printTitle("BALANCE SHEET", "as of "+bs.AsOf.Format(ledger.DateLayout))
		printSection("ASSETS")
		printLine("Cash on hand and at bank", bs.Cash)
		printLine("Accounts receivable", bs.Receivables)
		printLine("Inventory", bs.Inventory)
		printRule()
		printLine("Total assets", bs.Assets)
		fmt.Println()

		printSection("LIABILITIES")
		printLine("Accounts payable", bs.Payables)
		printLine("VAT payable", bs.VatPayable)
		printRule()
		printLine("Total liabilities", bs.Liabilities)
		fmt.Println()

		printSection("EQUITY")
		printLine("Capital", bs.Capital)
		printLine("Partner current accounts", bs.PartnerAccounts)
		printLine("Net profit", bs.NetProfit)
		printRule()
		printLine("Total equity", bs.Equity)
		fmt.Println()

		if bs.Reconciled {
			fmt.Println(okStyle.Render("  [RECONCILED]"))
		} else {
			fmt.Println(badStyle.Render("  [NOT RECONCILED]"))
		}
		printWarnings(bs.Warnings)
		return nil
	},
}

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Income statement for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, snap, err := loadSnapshot()
		if err != nil {
			return err
		}

		from, to := periodOrFiscalYear(cfg)
		is, err := engine.ComposeIncomeStatement(snap.Items, snap.Transactions, from, to)
		if err != nil {
			return err
		}

		printTitle("INCOME STATEMENT",
			is.PeriodStart.Format(ledger.DateLayout)+" to "+is.PeriodEnd.Format(ledger.DateLayout))
		printLine("Net sales", is.NetSales)
		printLine("Opening inventory", is.OpeningInventory)
		printLine("Net purchases", is.NetPurchases)
		printLine("Closing inventory", is.ClosingInventory)
		printLine("Cost of goods sold", is.COGS)
		printRule()
		printLine("Gross profit", is.GrossProfit)
		printLine("Expenses", is.TotalExpenses)
		printRule()
		printLine("Net profit", is.NetProfit)
		printWarnings(is.Warnings)
		return nil
	},
}

var vatCmd = &cobra.Command{
	Use:   "vat",
	Short: "VAT declaration for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, snap, err := loadSnapshot()
		if err != nil {
			return err
		}

		branch := reportBranch
		if branch == "" {
			branch = cfg.Business.DefaultBranch
		}

		from, to := periodOrFiscalYear(cfg)
		decl, err := engine.ComputeVatDeclaration(snap.Transactions, from, to, branch)
		if err != nil {
			return err
		}

		subtitle := decl.PeriodStart.Format(ledger.DateLayout) + " to " + decl.PeriodEnd.Format(ledger.DateLayout)
		if decl.Branch != "" {
			subtitle += ", branch " + decl.Branch
		}
		printTitle("VAT DECLARATION", subtitle)
		printLine("Output VAT (sales)", decl.OutputVat)
		printLine("Input VAT (purchases)", decl.InputVat)
		printRule()
		printLine("Net VAT", decl.NetVat)
		if decl.NetVat.IsNegative() {
			fmt.Println("\n  refund position")
		}
		return nil
	},
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inventory valuation as of a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snap, err := loadSnapshot()
		if err != nil {
			return err
		}

		report, err := engine.ComputeInventoryValue(snap.Items, snap.Transactions, asOfOrToday())
		if err != nil {
			return err
		}

		printTitle("INVENTORY VALUATION", "as of "+report.AsOf.Format(ledger.DateLayout))
		fmt.Printf("  %-10s %-24s %12s %12s %15s\n", "ITEM", "NAME", "QTY", "UNIT COST", "VALUE")
		for _, line := range report.Lines {
			fmt.Printf("  %-10s %-24s %12s %12s %15s\n",
				line.ItemID, clip(line.Name, 24), line.Quantity.String(),
				money(line.UnitCost), money(line.Value))
		}
		printRule()
		printLine("Total value", report.TotalValue)
		printWarnings(report.Warnings)
		return nil
	},
}

var reorderCmd = &cobra.Command{
	Use:   "reorder",
	Short: "Items at or below their reorder threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snap, err := loadSnapshot()
		if err != nil {
			return err
		}

		report, err := engine.ComputeReorderReport(snap.Items, snap.Transactions, asOfOrToday())
		if err != nil {
			return err
		}

		printTitle("REORDER REPORT", "as of "+report.AsOf.Format(ledger.DateLayout))
		if len(report.Lines) == 0 {
			fmt.Println("  nothing to reorder")
			return nil
		}
		fmt.Printf("  %-10s %-24s %12s %12s\n", "ITEM", "NAME", "ON HAND", "THRESHOLD")
		for _, line := range report.Lines {
			fmt.Printf("  %-10s %-24s %12s %12s\n",
				line.ItemID, clip(line.Name, 24), line.Quantity.String(), line.ReorderLevel.String())
		}
		printWarnings(report.Warnings)
		return nil
	},
}

func loadSnapshot() (*config.Config, *ledger.Snapshot, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	snap, err := st.LoadSnapshot(context.Background())
	if err != nil {
		return nil, nil, err
	}
	return cfg, snap, nil
}

func asOfOrToday() string {
	if reportAsOf != "" {
		return reportAsOf
	}
	return time.Now().UTC().Format(ledger.DateLayout)
}

// periodOrFiscalYear defaults the period to the configured fiscal year up
// to today when the flags are not given.
func periodOrFiscalYear(cfg *config.Config) (string, string) {
	from, to := reportFrom, reportTo
	if to == "" {
		to = time.Now().UTC().Format(ledger.DateLayout)
	}
	if from == "" {
		yearStart := cfg.Fiscal.YearStart
		if yearStart == "" {
			yearStart = "01-01"
		}
		from = fmt.Sprintf("%04d-%s", time.Now().UTC().Year(), yearStart)
	}
	return from, to
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-2] + ".."
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportAsOf, "as-of", "", "Report date (YYYY-MM-DD, default today)")
	reportCmd.PersistentFlags().StringVar(&reportFrom, "from", "", "Period start (YYYY-MM-DD, default fiscal year start)")
	reportCmd.PersistentFlags().StringVar(&reportTo, "to", "", "Period end (YYYY-MM-DD, default today)")
	reportCmd.PersistentFlags().StringVar(&reportBranch, "branch", "", "Branch filter (VAT report)")

	reportCmd.AddCommand(balanceSheetCmd)
	reportCmd.AddCommand(incomeCmd)
	reportCmd.AddCommand(vatCmd)
	reportCmd.AddCommand(inventoryCmd)
	reportCmd.AddCommand(reorderCmd)
	rootCmd.AddCommand(reportCmd)
}
