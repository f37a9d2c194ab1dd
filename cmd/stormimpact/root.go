package main

import (
	"errors"
	"log/slog"

	kafkaadapter "github.com/couchcryptid/storm-impact-report/internal/adapter/kafka"
	"github.com/couchcryptid/storm-impact-report/internal/config"
	"github.com/couchcryptid/storm-impact-report/internal/ingest"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/pipeline"
	"github.com/couchcryptid/storm-impact-report/internal/report"
	"github.com/spf13/cobra"
)

// rootFlags are shared by the run, serve, and check subcommands.
type rootFlags struct {
	input  string
	output string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "stormimpact",
		Short:         "Ranked health and economic impact summaries from NOAA Storm Events data",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&flags.input, "input", "", "path to the Storm Events table (.csv or .xlsx)")
	cmd.PersistentFlags().StringVar(&flags.output, "output", "", `report destination ("-" for stdout)`)

	cmd.AddCommand(
		newRunCmd(flags),
		newServeCmd(flags),
		newCheckCmd(flags),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig layers env/file config and applies flag overrides.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.input != "" {
		cfg.InputPath = flags.input
	}
	if flags.output != "" {
		cfg.OutputPath = flags.output
	}
	if cfg.InputPath == "" {
		return nil, errors.New("no input file: set --input or STORM_INPUT_PATH")
	}
	return cfg, nil
}

// buildPipeline wires the pipeline with its sinks. The returned cleanup
// closes the Kafka producer when one was created.
func buildPipeline(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics,
	withSinks bool,
) (*pipeline.Pipeline, func(), error) {
	cutoff, err := cfg.Cutoff()
	if err != nil {
		return nil, nil, err
	}

	var sinks []pipeline.ReportSink
	cleanup := func() {}

	if withSinks {
		sinks = append(sinks, report.NewFileWriter(cfg.OutputPath, logger))
		if cfg.KafkaEnabled {
			publisher := kafkaadapter.NewPublisher(cfg, logger)
			sinks = append(sinks, publisher)
			cleanup = func() {
				if err := publisher.Close(); err != nil {
					logger.Error("kafka publisher close error", "error", err)
				}
			}
			logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic)
		}
	}

	open := func() (pipeline.RecordReader, error) { return ingest.Open(cfg.InputPath) }
	p := pipeline.New(cfg.InputPath, open, sinks, cutoff, cfg.TopN, logger, metrics)
	return p, cleanup, nil
}
