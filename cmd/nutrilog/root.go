package main

import (
	"github.com/and161185/nutrilog/internal/config"
	"github.com/and161185/nutrilog/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRootCmd loads defaults, .env and the environment, then lets flags override them.
func newRootCmd() (*cobra.Command, error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:           "nutrilog",
		Short:         "Nutrition tracking API server",
		Version:       version + " (" + buildDate + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(&cfg),
		newMigrateCmd(&cfg),
		newSweepCmd(&cfg),
	)
	return root, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Development(), cfg.LogLevel)
}
