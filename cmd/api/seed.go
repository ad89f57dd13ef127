package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/auth"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/infra/database"
	"github.com/Raunakkkkk/cstech-machine-coding-raunak/internal/usecase"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin account from seed.* settings if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := database.NewDBConnection(ctx, cfg.Database.URL, database.PoolConfig{})
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := usecase.NewSeedAdminUseCase(
			database.NewUserRepository(pool),
			auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		)
		created, err := uc.Execute(ctx, usecase.SeedAdminInput{
			Name:     cfg.Seed.AdminName,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
		})
		if err != nil {
			return err
		}

		zap.L().Info("seed-admin finished", zap.Bool("created", created))
		return nil
	},
}
