package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulator_GroupedSum(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("A", 10)
	acc.Add("B", 30)
	acc.Add("A", 5)

	assert.Equal(t, 2, acc.Len())
	assert.Equal(t, []Group{{"B", 30}, {"A", 15}}, acc.TopN(-1))
	assert.Equal(t, []Group{{"B", 30}}, acc.TopN(1))
}

func TestAccumulator_ExactLabels(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("TSTM WIND", 1)
	acc.Add("Tstm Wind", 2)
	acc.Add("TSTM WIND ", 4)

	// Case and whitespace variants are distinct groups.
	assert.Equal(t, 3, acc.Len())
	assert.Equal(t, 1.0, acc.Total("TSTM WIND"))
	assert.Equal(t, 4.0, acc.Total("TSTM WIND "))
}

func TestAccumulator_TiesKeepFirstEncounterOrder(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("first", 7)
	acc.Add("second", 7)
	acc.Add("third", 9)

	got := acc.TopN(3)
	assert.Equal(t, []Group{{"third", 9}, {"first", 7}, {"second", 7}}, got)
}

func TestAccumulator_OrderIndependentSums(t *testing.T) {
	type pair struct {
		label string
		value float64
	}
	pairs := []pair{{"A", 1}, {"B", 2}, {"A", 3}, {"C", 4}, {"B", 5}}

	forward := NewAccumulator()
	for _, p := range pairs {
		forward.Add(p.label, p.value)
	}

	backward := NewAccumulator()
	for i := len(pairs) - 1; i >= 0; i-- {
		backward.Add(pairs[i].label, pairs[i].value)
	}

	for _, label := range []string{"A", "B", "C"} {
		assert.Equal(t, forward.Total(label), backward.Total(label), label)
	}
}

func TestAccumulator_TopNTruncation(t *testing.T) {
	acc := NewAccumulator()
	for i, label := range []string{"a", "b", "c", "d"} {
		acc.Add(label, float64(i))
	}

	assert.Len(t, acc.TopN(2), 2)
	assert.Len(t, acc.TopN(10), 4)
	assert.Empty(t, acc.TopN(0))
}

func TestAccumulator_ZeroAndNegativeValues(t *testing.T) {
	acc := NewAccumulator()
	acc.Add("zero", 0)
	acc.Add("neg", -2)
	acc.Add("pos", 1)

	got := acc.TopN(-1)
	assert.Equal(t, []Group{{"pos", 1}, {"zero", 0}, {"neg", -2}}, got)
}
