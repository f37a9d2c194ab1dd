package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/spf13/cobra"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one aggregation pass and write the report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			logger := observability.NewLogger(cfg)
			metrics := observability.NewMetrics()

			p, cleanup, err := buildPipeline(cfg, logger, metrics, true)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := p.Run(ctx); err != nil {
				logger.Error("report run failed", "error", err)
				return err
			}
			return nil
		},
	}
}
