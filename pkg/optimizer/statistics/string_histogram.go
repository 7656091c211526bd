package statistics

import "heapbase/pkg/types"

// stringHashDomain bounds the integer range StringHistogram maps strings
// into: exactly 2^32, the range of a 4-byte big-endian pack. It must not
// be reduced further — any modulus smaller than this would discard
// leading bytes and break the ordering the histogram depends on.
const stringHashDomain = 1 << 32

// StringHistogram maps strings to integers via a fixed order-preserving
// hash and delegates to an IntHistogram over that fixed domain.
// This is not xxhash: xxhash is a fast non-order-preserving digest used
// elsewhere (table-id hashing) and would break EstimateSelectivity's
// range comparisons for LESS_THAN/GREATER_THAN.
type StringHistogram struct {
	inner *IntHistogram
}

// NewStringHistogram constructs a StringHistogram with numBuckets buckets.
func NewStringHistogram(numBuckets int) *StringHistogram {
	return &StringHistogram{inner: NewIntHistogram(numBuckets, 0, stringHashDomain-1)}
}

// stringToInt maps s to an integer preserving lexicographic order over the
// prefix it considers, by packing the first 4 bytes into a big-endian
// integer with no further reduction — a modulus here would discard
// leading bytes and two strings differing only in their first character
// could hash to the same bucket.
func stringToInt(s string) int {
	const width = 4
	var v int
	for i := 0; i < width; i++ {
		v <<= 8
		if i < len(s) {
			v |= int(s[i])
		}
	}
	return v
}

// AddValue records s.
func (h *StringHistogram) AddValue(s string) {
	h.inner.AddValue(stringToInt(s))
}

// EstimateSelectivity estimates the selectivity of "field op s".
func (h *StringHistogram) EstimateSelectivity(op types.Predicate, s string) float64 {
	if op == types.Like {
		return h.inner.AvgSelectivity() / float64(max64(h.inner.ntup, 1))
	}
	return h.inner.EstimateSelectivity(op, stringToInt(s))
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
