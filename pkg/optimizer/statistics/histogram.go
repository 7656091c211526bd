// Package statistics implements equi-width histograms and per-table
// statistics used for selectivity estimation.
package statistics

import (
	"math"

	pair "github.com/notEpsilon/go-pair"

	"heapbase/pkg/types"
)

// IntHistogram is an equi-width histogram over the inclusive integer range
// [min, max], split into numBuckets buckets.
type IntHistogram struct {
	buckets    []int64
	numBuckets int
	min, max   int
	width      float64
	ntup       int64
}

// NewIntHistogram constructs an IntHistogram with numBuckets buckets over
// [min, max].
func NewIntHistogram(numBuckets, min, max int) *IntHistogram {
	width := float64(max-min+1) / float64(numBuckets)
	return &IntHistogram{
		buckets:    make([]int64, numBuckets),
		numBuckets: numBuckets,
		min:        min,
		max:        max,
		width:      width,
	}
}

// bucketRange returns the inclusive integer range [lo, hi] bucket i spans,
// paired via go-pair as (lo, hi); collapsed to a single point if the
// computed range would be empty.
func (h *IntHistogram) bucketRange(i int) pair.Pair[int, int] {
	lo := int(math.Ceil(float64(h.min) + float64(i)*h.width))
	hi := int(math.Ceil(float64(h.min)+float64(i+1)*h.width)) - 1
	if hi < lo {
		hi = lo
	}
	return *pair.New(lo, hi)
}

func (h *IntHistogram) bucketWidth(i int) int {
	r := h.bucketRange(i)
	w := r.Second - r.First + 1
	if w < 1 {
		w = 1
	}
	return w
}

// indexOf returns the bucket index containing v, clamped to
// [0, numBuckets-1].
func (h *IntHistogram) indexOf(v int) int {
	idx := int(math.Floor(float64(v-h.min) / h.width))
	if idx < 0 {
		idx = 0
	}
	if idx >= h.numBuckets {
		idx = h.numBuckets - 1
	}
	return idx
}

// AddValue records v. Values outside [min, max] are out-of-domain and are
// not specially handled.
func (h *IntHistogram) AddValue(v int) {
	h.buckets[h.indexOf(v)]++
	h.ntup++
}

// EstimateSelectivity returns the estimated selectivity in [0, 1] of
// "field op v" given this histogram.
func (h *IntHistogram) EstimateSelectivity(op types.Predicate, v int) float64 {
	if h.ntup == 0 {
		return 0
	}
	switch op {
	case types.Equals:
		return h.equalsSel(v)
	case types.NotEqual:
		return 1 - h.equalsSel(v)
	case types.GreaterThan:
		return h.greaterThanSel(v)
	case types.GreaterThanOrEqual:
		return h.greaterThanSel(v - 1)
	case types.LessThan:
		return h.lessThanSel(v)
	case types.LessThanOrEqual:
		return h.lessThanSel(v + 1)
	default:
		return 1.0
	}
}

func (h *IntHistogram) equalsSel(v int) float64 {
	if v < h.min || v > h.max {
		return 0
	}
	i := h.indexOf(v)
	return (float64(h.buckets[i]) / float64(h.bucketWidth(i))) / float64(h.ntup)
}

func (h *IntHistogram) greaterThanSel(v int) float64 {
	if v < h.min {
		return 1
	}
	if v > h.max {
		return 0
	}
	i := h.indexOf(v)
	r := h.bucketRange(i)
	width := h.bucketWidth(i)
	frac := float64(h.buckets[i]) * float64(r.Second-v) / float64(width)
	for j := i + 1; j < h.numBuckets; j++ {
		frac += float64(h.buckets[j])
	}
	return frac / float64(h.ntup)
}

func (h *IntHistogram) lessThanSel(v int) float64 {
	if v > h.max {
		return 1
	}
	if v < h.min {
		return 0
	}
	i := h.indexOf(v)
	r := h.bucketRange(i)
	width := h.bucketWidth(i)
	frac := float64(h.buckets[i]) * float64(v-r.First) / float64(width)
	for j := 0; j < i; j++ {
		frac += float64(h.buckets[j])
	}
	return frac / float64(h.ntup)
}

// AvgSelectivity is an unnormalized diagnostic retained for the planner.
func (h *IntHistogram) AvgSelectivity() float64 {
	if h.numBuckets == 0 {
		return 0
	}
	var sum int64
	for _, c := range h.buckets {
		sum += c
	}
	return float64(sum) / float64(h.numBuckets)
}
