package main

import (
	"fmt"

	"freight/internal/pkg/postgres"
	"freight/migrations"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect schema migrations",
	}
	cmd.AddCommand(migrateRunCmd("up", "Apply all pending migrations", goose.UpContext))
	cmd.AddCommand(migrateRunCmd("down", "Roll back the latest migration", goose.DownContext))
	cmd.AddCommand(migrateRunCmd("status", "Print migration status", goose.StatusContext))
	return cmd
}

func migrateRunCmd(use, short string, command migrations.Command) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := migrations.Run(cmd.Context(), postgres.DSN(&cfg.Database), command); err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			return nil
		},
	}
}
