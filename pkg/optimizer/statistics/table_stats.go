package statistics

import (
	"fmt"
	"math"

	"heapbase/pkg/primitives"
	"heapbase/pkg/storage/heap"
	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

// NumBuckets is the fixed bucket count used for every field histogram.
const NumBuckets = 100

type fieldHist struct {
	intHist *IntHistogram
	strHist *StringHistogram
	kind    types.Type
}

// TableStats holds per-field selectivity histograms and size statistics
// for one table, built via a two-pass scan.
type TableStats struct {
	tableID       primitives.TableID
	ioCostPerPage float64
	numPages      int
	totalTuples   int64
	hists         []fieldHist
}

// NewTableStats scans file twice under a throwaway transaction id: once to
// discover per-field bounds, once to populate the histograms.
func NewTableStats(tableID primitives.TableID, file *heap.HeapFile, ioCostPerPage float64) (*TableStats, error) {
	desc := file.GetTupleDesc()
	n := desc.NumFields()

	mins := make([]int, n)
	maxs := make([]int, n)
	for i := range mins {
		mins[i] = math.MaxInt32
		maxs[i] = math.MinInt32
	}

	const statsTid = "table-stats-scan"

	scan := func(visit func(i int, t *tuple.Tuple) error) error {
		it := file.Iterator(statsTid)
		if err := it.Open(); err != nil {
			return err
		}
		defer it.Close()
		for {
			has, err := it.HasNext()
			if err != nil {
				return err
			}
			if !has {
				return nil
			}
			t, err := it.Next()
			if err != nil {
				return err
			}
			for i := 0; i < n; i++ {
				if err := visit(i, t); err != nil {
					return err
				}
			}
		}
	}

	var totalTuples int64
	err := scan(func(i int, t *tuple.Tuple) error {
		if i == 0 {
			totalTuples++
		}
		v, err := fieldToInt(t.GetField(i))
		if err != nil {
			return err
		}
		if v < mins[i] {
			mins[i] = v
		}
		if v > maxs[i] {
			maxs[i] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	hists := make([]fieldHist, n)
	for i := 0; i < n; i++ {
		switch desc.FieldType(i) {
		case types.IntType:
			lo, hi := mins[i], maxs[i]
			if lo > hi {
				lo, hi = 0, 0
			}
			hists[i] = fieldHist{intHist: NewIntHistogram(NumBuckets, lo, hi), kind: types.IntType}
		case types.StringType:
			hists[i] = fieldHist{strHist: NewStringHistogram(NumBuckets), kind: types.StringType}
		}
	}

	err = scan(func(i int, t *tuple.Tuple) error {
		switch f := t.GetField(i).(type) {
		case *types.Int32Field:
			hists[i].intHist.AddValue(int(f.Value))
		case *types.StringField:
			hists[i].strHist.AddValue(f.Value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &TableStats{
		tableID:       tableID,
		ioCostPerPage: ioCostPerPage,
		numPages:      file.NumPages(),
		totalTuples:   totalTuples,
		hists:         hists,
	}, nil
}

func fieldToInt(f types.Field) (int, error) {
	switch v := f.(type) {
	case *types.Int32Field:
		return int(v.Value), nil
	case *types.StringField:
		return stringToInt(v.Value), nil
	default:
		return 0, fmt.Errorf("statistics: unsupported field type %s", f.GetType())
	}
}

// EstimateScanCost is numPages * ioCostPerPage.
func (s *TableStats) EstimateScanCost() float64 {
	return float64(s.numPages) * s.ioCostPerPage
}

// EstimateTableCardinality is round(totalTuples * sel).
func (s *TableStats) EstimateTableCardinality(sel float64) int {
	return int(math.Round(float64(s.totalTuples) * sel))
}

// EstimateSelectivity dispatches to field's histogram.
func (s *TableStats) EstimateSelectivity(field int, op types.Predicate, constant types.Field) (float64, error) {
	if field < 0 || field >= len(s.hists) {
		return 0, fmt.Errorf("statistics: field index %d out of range", field)
	}
	h := s.hists[field]
	switch c := constant.(type) {
	case *types.Int32Field:
		if h.intHist == nil {
			return 0, fmt.Errorf("statistics: field %d is not numeric", field)
		}
		return h.intHist.EstimateSelectivity(op, int(c.Value)), nil
	case *types.StringField:
		if h.strHist == nil {
			return 0, fmt.Errorf("statistics: field %d is not a string", field)
		}
		return h.strHist.EstimateSelectivity(op, c.Value), nil
	default:
		return 0, fmt.Errorf("statistics: unsupported constant type")
	}
}

// AvgSelectivity returns the field's histogram's unnormalized diagnostic
// average selectivity.
func (s *TableStats) AvgSelectivity(field int) (float64, error) {
	if field < 0 || field >= len(s.hists) {
		return 0, fmt.Errorf("statistics: field index %d out of range", field)
	}
	h := s.hists[field]
	if h.intHist != nil {
		return h.intHist.AvgSelectivity(), nil
	}
	if h.strHist != nil {
		return h.strHist.inner.AvgSelectivity(), nil
	}
	return 0, fmt.Errorf("statistics: field %d has no histogram", field)
}
