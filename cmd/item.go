package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dafterhq/dafter/internal/ledger"
)

var (
	itemID      string
	itemName    string
	itemUnit    string
	itemPrice   string
	itemStock   string
	itemReorder string
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage stock items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a stock item",
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := parseDecFlag("price", itemPrice)
		if err != nil {
			return err
		}
		stock, err := parseDecFlag("opening-stock", itemStock)
		if err != nil {
			return err
		}
		reorder, err := parseDecFlag("reorder", itemReorder)
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

		item := ledger.Item{
			ID:            itemID,
			Name:          itemName,
			Unit:          itemUnit,
			PurchasePrice: price,
			OpeningStock:  stock,
			ReorderLevel:  reorder,
		}
		if err := st.CreateItem(context.Background(), &item); err != nil {
			return err
		}
		fmt.Printf("created item %s (%s)\n", item.ID, item.Name)
		return nil
	},
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stock items",
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

		items, err := st.ListItems(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%-10s %-26s %-8s %12s %12s %12s\n", "ID", "NAME", "UNIT", "COST", "OPENING", "REORDER")
		for _, item := range items {
			fmt.Printf("%-10s %-26s %-8s %12s %12s %12s\n",
				item.ID, clip(item.Name, 26), item.Unit, money(item.PurchasePrice),
				item.OpeningStock.String(), item.ReorderLevel.String())
		}
		return nil
	},
}

func parseDecFlag(flag, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s %q: %w", flag, value, err)
	}
	return d, nil
}

func init() {
	itemAddCmd.Flags().StringVar(&itemID, "id", "", "Item code")
	itemAddCmd.Flags().StringVar(&itemName, "name", "", "Item name")
	itemAddCmd.Flags().StringVar(&itemUnit, "unit", "pc", "Unit of measure")
	itemAddCmd.Flags().StringVar(&itemPrice, "price", "", "Current purchase price")
	itemAddCmd.Flags().StringVar(&itemStock, "opening-stock", "", "Declared opening stock quantity")
	itemAddCmd.Flags().StringVar(&itemReorder, "reorder", "", "Reorder threshold")
	itemAddCmd.MarkFlagRequired("id")
	itemAddCmd.MarkFlagRequired("name")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemListCmd)
	rootCmd.AddCommand(itemCmd)
}
