package main

import (
	"github.com/and161185/nutrilog/internal/config"
	"github.com/and161185/nutrilog/internal/migrate"
	"github.com/spf13/cobra"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate.Up(cmd.Context(), cfg.DatabaseURL)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print applied and pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate.Status(cmd.Context(), cfg.DatabaseURL)
			},
		},
	)
	return cmd
}
