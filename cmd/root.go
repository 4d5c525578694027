package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dafterhq/dafter/internal/config"
	"github.com/dafterhq/dafter/internal/store"
)

var (
	flagDB     string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "dafter",
	Short: "Accounting and inventory books with point-in-time reports",
	Long: "dafter keeps append-only accounting and inventory books in SQLite and\n" +
		"reconstructs balances, financial statements, and VAT declarations as of\n" +
		"any date from the full transaction history.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Books database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "dafter.yaml", "Config file path")
}

func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.DB = flagDB
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	return store.Open(cfg.DB)
}
