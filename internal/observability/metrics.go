package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// impact aggregation pipeline.
type Metrics struct {
	RowsRead           prometheus.Counter
	RowsDroppedBadDate prometheus.Counter
	RowsFiltered       prometheus.Counter
	RowsAggregated     prometheus.Counter

	// UnknownDamageCodes counts damage exponent codes outside the documented
	// encoding, labelled by code. These contributions were zeroed.
	UnknownDamageCodes *prometheus.CounterVec

	ReportsGenerated prometheus.Counter
	ReportDuration   prometheus.Histogram
	PipelineRunning  prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "rows_read_total",
			Help:      "Total rows read from the input file.",
		}),
		RowsDroppedBadDate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "rows_dropped_bad_date_total",
			Help:      "Rows dropped because BGN_DATE failed to parse.",
		}),
		RowsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "rows_filtered_total",
			Help:      "Rows excluded for beginning before the cutoff date.",
		}),
		RowsAggregated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "rows_aggregated_total",
			Help:      "Rows that contributed to the aggregates.",
		}),
		UnknownDamageCodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "unknown_damage_codes_total",
			Help:      "Damage exponent codes outside the documented encoding, by code.",
		}, []string{"code"}),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_impact",
			Name:      "reports_generated_total",
			Help:      "Total reports produced.",
		}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_impact",
			Name:      "report_duration_seconds",
			Help:      "Duration of a complete read-derive-aggregate-deliver run.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_impact",
			Name:      "pipeline_running",
			Help:      "1 while a report run is in progress, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsDroppedBadDate,
		m.RowsFiltered,
		m.RowsAggregated,
		m.UnknownDamageCodes,
		m.ReportsGenerated,
		m.ReportDuration,
		m.PipelineRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsRead:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_impact", Name: "rows_read_total"}),
		RowsDroppedBadDate: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_impact", Name: "rows_dropped_bad_date_total"}),
		RowsFiltered:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_impact", Name: "rows_filtered_total"}),
		RowsAggregated:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_impact", Name: "rows_aggregated_total"}),
		UnknownDamageCodes: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "storm_impact", Name: "unknown_damage_codes_total"}, []string{"code"}),
		ReportsGenerated:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_impact", Name: "reports_generated_total"}),
		ReportDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_impact", Name: "report_duration_seconds"}),
		PipelineRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_impact", Name: "pipeline_running"}),
	}
}
