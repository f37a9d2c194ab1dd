// Package report defines the impact report produced by one pipeline run and
// the sinks that deliver it.
package report

import (
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/aggregate"
	"github.com/google/uuid"
)

// RankedGroup is one row of a ranked list: an event-type label and its
// summed metric. Rank is 1-based.
type RankedGroup struct {
	Rank      int     `json:"rank"`
	EventType string  `json:"event_type"`
	Total     float64 `json:"total"`
}

// RowCounts accounts for every input row: Read = DroppedBadDate +
// FilteredBeforeCutoff + Aggregated.
type RowCounts struct {
	Read                 int `json:"read"`
	DroppedBadDate       int `json:"dropped_bad_date"`
	FilteredBeforeCutoff int `json:"filtered_before_cutoff"`
	Aggregated           int `json:"aggregated"`
}

// ImpactReport is the full output of one analysis run.
type ImpactReport struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`
	Cutoff      time.Time `json:"cutoff"`
	TopN        int       `json:"top_n"`

	Rows RowCounts `json:"rows"`

	// UnknownDamageCodes tallies non-blank damage exponent codes outside the
	// documented encoding, per code. Their contributions were zeroed.
	UnknownDamageCodes map[string]int `json:"unknown_damage_codes,omitempty"`

	TopHealthImpact   []RankedGroup `json:"top_health_impact"`
	TopEconomicImpact []RankedGroup `json:"top_economic_impact"`
}

// New creates a report skeleton with a fresh run ID and the current clock
// time. Ranked lists and row counts are filled in by the pipeline.
func New(source string, cutoff time.Time, topN int) *ImpactReport {
	return &ImpactReport{
		RunID:       uuid.NewString(),
		GeneratedAt: clock.Now().UTC(),
		Source:      source,
		Cutoff:      cutoff,
		TopN:        topN,
	}
}

// Rank converts aggregated groups into a ranked list, assigning 1-based ranks
// in slice order.
func Rank(groups []aggregate.Group) []RankedGroup {
	ranked := make([]RankedGroup, len(groups))
	for i, g := range groups {
		ranked[i] = RankedGroup{Rank: i + 1, EventType: g.Label, Total: g.Total}
	}
	return ranked
}
