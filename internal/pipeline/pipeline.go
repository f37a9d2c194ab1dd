// Package pipeline orchestrates one read-derive-aggregate-deliver pass over a
// Storm Events table.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/aggregate"
	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

// badDateLogLimit caps per-row warn logs for unparseable dates; the full
// count is always in the report and metrics.
const badDateLogLimit = 5

// RecordReader yields raw records, returning io.EOF when the input is
// exhausted.
type RecordReader interface {
	Read() (domain.RawRecord, error)
	Close() error
}

// ReportSink delivers a finished report to a destination.
type ReportSink interface {
	Deliver(ctx context.Context, rep *report.ImpactReport) error
}

// OpenFunc opens a fresh reader over the input. The pipeline re-opens the
// input on every run so serve mode can recompute after the file changes.
type OpenFunc func() (RecordReader, error)

// Pipeline computes impact reports from an input table and delivers them to
// the configured sinks.
type Pipeline struct {
	source  string
	open    OpenFunc
	sinks   []ReportSink
	cutoff  time.Time
	topN    int
	logger  *slog.Logger
	metrics *observability.Metrics

	latest atomic.Pointer[report.ImpactReport]
}

// New creates a Pipeline. source is the input path recorded in reports; open
// must yield a reader over that input.
func New(source string, open OpenFunc, sinks []ReportSink, cutoff time.Time, topN int,
	logger *slog.Logger, metrics *observability.Metrics,
) *Pipeline {
	return &Pipeline{
		source:  source,
		open:    open,
		sinks:   sinks,
		cutoff:  cutoff,
		topN:    topN,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once at least one report has been produced.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.latest.Load() == nil {
		return errors.New("no report has been produced yet")
	}
	return nil
}

// Latest returns the most recent report, or nil before the first run
// completes.
func (p *Pipeline) Latest() *report.ImpactReport {
	return p.latest.Load()
}

// Run executes one complete pass: read every record, derive metrics, filter
// by cutoff, aggregate, then deliver the report to every sink. It either
// completes fully or returns an error with no report published.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	rep, err := p.buildReport(ctx)
	if err != nil {
		return err
	}

	for _, sink := range p.sinks {
		if err := sink.Deliver(ctx, rep); err != nil {
			return fmt.Errorf("deliver report: %w", err)
		}
	}

	p.latest.Store(rep)
	p.metrics.ReportsGenerated.Inc()
	p.metrics.ReportDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("report generated",
		"run_id", rep.RunID,
		"rows_read", rep.Rows.Read,
		"rows_dropped_bad_date", rep.Rows.DroppedBadDate,
		"rows_filtered", rep.Rows.FilteredBeforeCutoff,
		"rows_aggregated", rep.Rows.Aggregated,
		"unknown_damage_codes", len(rep.UnknownDamageCodes),
		"duration", time.Since(start),
	)
	return nil
}

// buildReport performs the single aggregation pass over the input.
func (p *Pipeline) buildReport(ctx context.Context) (*report.ImpactReport, error) {
	reader, err := p.open()
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer reader.Close()

	rep := report.New(p.source, p.cutoff, p.topN)
	health := aggregate.NewAccumulator()
	economic := aggregate.NewAccumulator()
	unknownCodes := map[string]int{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		rep.Rows.Read++

		for _, code := range domain.UnrecognizedDamageCodes(rec) {
			unknownCodes[code]++
			p.metrics.UnknownDamageCodes.WithLabelValues(code).Inc()
		}

		event, err := domain.DeriveImpact(rec)
		if err != nil {
			rep.Rows.DroppedBadDate++
			p.metrics.RowsDroppedBadDate.Inc()
			if rep.Rows.DroppedBadDate <= badDateLogLimit {
				p.logger.Warn("dropping record with unparseable date",
					"line", rec.Line, "error", err)
			}
			continue
		}

		if event.BeginDate.Before(p.cutoff) {
			rep.Rows.FilteredBeforeCutoff++
			p.metrics.RowsFiltered.Inc()
			continue
		}

		rep.Rows.Aggregated++
		health.Add(event.EventType, event.HealthImpact)
		economic.Add(event.EventType, event.EconomicImpact)
	}

	p.metrics.RowsRead.Add(float64(rep.Rows.Read))
	p.metrics.RowsAggregated.Add(float64(rep.Rows.Aggregated))

	if len(unknownCodes) > 0 {
		rep.UnknownDamageCodes = unknownCodes
		p.logger.Warn("unrecognized damage exponent codes zeroed",
			"codes", unknownCodes)
	}

	rep.TopHealthImpact = report.Rank(health.TopN(p.topN))
	rep.TopEconomicImpact = report.Rank(economic.TopN(p.topN))
	return rep, nil
}
