package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the users and leads tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := database.NewDBConnection(ctx, cfg.Database.URL, database.PoolConfig{})
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}

		zap.L().Info("migration complete")
		return nil
	},
}
