package main

import (
	"encoding/json"

	"github.com/and161185/nutrilog/internal/config"
	"github.com/and161185/nutrilog/internal/repository/postgres"
	"github.com/and161185/nutrilog/internal/service"
	"github.com/spf13/cobra"
)

func newSweepCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete log entries and refresh tokens older than the retention window, once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := postgres.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := service.NewRetentionService(postgres.NewRetentionRepo(db), cfg.RetentionDays, cfg.SweepHour, log).Sweep(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
