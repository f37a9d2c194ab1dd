// Package aggregate provides grouped summation with deterministic top-N
// ranking. Grouping is by exact label: callers that want case-folded or
// trimmed groups must normalize before adding.
package aggregate

import "sort"

// Group is one aggregated (label, total) pair.
type Group struct {
	Label string
	Total float64
}

// Accumulator sums values per label. It remembers the order in which labels
// were first seen so that ties in TopN break deterministically regardless of
// later input order.
type Accumulator struct {
	totals map[string]float64
	order  []string
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{totals: make(map[string]float64)}
}

// Add accumulates value into the label's group.
func (a *Accumulator) Add(label string, value float64) {
	if _, seen := a.totals[label]; !seen {
		a.order = append(a.order, label)
	}
	a.totals[label] += value
}

// Len returns the number of distinct groups.
func (a *Accumulator) Len() int {
	return len(a.totals)
}

// Total returns the accumulated sum for a label, zero if never added.
func (a *Accumulator) Total(label string) float64 {
	return a.totals[label]
}

// TopN returns the n groups with the largest totals, descending. Ties keep
// first-encounter order (stable sort over the insertion sequence). A negative
// n returns all groups.
func (a *Accumulator) TopN(n int) []Group {
	groups := make([]Group, 0, len(a.order))
	for _, label := range a.order {
		groups = append(groups, Group{Label: label, Total: a.totals[label]})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})

	if n >= 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
