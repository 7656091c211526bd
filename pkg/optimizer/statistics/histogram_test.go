package statistics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"heapbase/pkg/types"
)

// TestHistogramSelectivityScenario checks selectivity estimates against
// hand-computed values for a small, known value distribution.
func TestHistogramSelectivityScenario(t *testing.T) {
	h := NewIntHistogram(10, 1, 10)
	for _, v := range []int{3, 3, 3, 1, 10} {
		h.AddValue(v)
	}

	require.InDelta(t, 0.6, h.EstimateSelectivity(types.Equals, 3), 1e-9)
	require.InDelta(t, 0.2, h.EstimateSelectivity(types.GreaterThan, 3), 1e-9)
}

func TestHistogramSelectivityInvariants(t *testing.T) {
	h := NewIntHistogram(10, 1, 10)
	for v := 1; v <= 10; v++ {
		h.AddValue(v)
	}

	for v := 1; v <= 10; v++ {
		eq := h.EstimateSelectivity(types.Equals, v)
		neq := h.EstimateSelectivity(types.NotEqual, v)
		require.InDelta(t, 1.0, eq+neq, 1e-9)

		lt := h.EstimateSelectivity(types.LessThan, v)
		gt := h.EstimateSelectivity(types.GreaterThan, v)
		require.InDelta(t, 1.0, lt+eq+gt, 1e-9)

		require.GreaterOrEqual(t, eq, 0.0)
		require.LessOrEqual(t, eq, 1.0)
	}
}

func TestHistogramOutOfRange(t *testing.T) {
	h := NewIntHistogram(10, 1, 10)
	h.AddValue(5)

	require.Equal(t, 1.0, h.EstimateSelectivity(types.GreaterThan, 0))
	require.Equal(t, 0.0, h.EstimateSelectivity(types.GreaterThan, 11))
	require.Equal(t, 1.0, h.EstimateSelectivity(types.LessThan, 11))
	require.Equal(t, 0.0, h.EstimateSelectivity(types.LessThan, 0))
}

func TestStringHistogramOrderPreserving(t *testing.T) {
	require.Less(t, stringToInt("apple"), stringToInt("banana"))
	require.Less(t, stringToInt("aa"), stringToInt("ab"))
}
