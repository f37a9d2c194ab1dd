package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/spf13/cobra"
)

// newCheckCmd validates an input file without writing or publishing a report:
// schema problems fail loudly, and data-quality counts (unparseable dates,
// unrecognized damage codes) are printed for review.
func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate an input file and print data-quality counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			logger := observability.NewLogger(cfg)
			metrics := observability.NewMetrics()

			p, cleanup, err := buildPipeline(cfg, logger, metrics, false)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := p.Run(ctx); err != nil {
				return err
			}
			rep := p.Latest()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Input: %s\n", rep.Source)
			fmt.Fprintf(out, "Rows read:               %d\n", rep.Rows.Read)
			fmt.Fprintf(out, "Dropped (bad date):      %d\n", rep.Rows.DroppedBadDate)
			fmt.Fprintf(out, "Filtered (before %s): %d\n", rep.Cutoff.Format("2006-01-02"), rep.Rows.FilteredBeforeCutoff)
			fmt.Fprintf(out, "Aggregated:              %d\n", rep.Rows.Aggregated)

			if len(rep.UnknownDamageCodes) == 0 {
				fmt.Fprintln(out, "No unrecognized damage codes.")
				return nil
			}

			fmt.Fprintf(out, "Unrecognized damage codes (%d distinct, contributions zeroed):\n",
				len(rep.UnknownDamageCodes))
			codes := make([]string, 0, len(rep.UnknownDamageCodes))
			for code := range rep.UnknownDamageCodes {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			for _, code := range codes {
				fmt.Fprintf(out, "  %-4q %d\n", code, rep.UnknownDamageCodes[code])
			}
			return nil
		},
	}
}
