package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leaddist",
	Short: "Admin lead distribution service",
	Long:  "Uploads CSV/XLSX lead files, validates phones and spreads the rows round-robin over the agent roster.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
