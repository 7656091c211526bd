package aggregation

import "heapbase/pkg/tuple"

// ResultIterator walks the materialized rows an Aggregator produced. Row
// order across groups is unspecified; this iterator simply replays
// insertion order.
type ResultIterator struct {
	desc *tuple.TupleDesc
	rows []*tuple.Tuple
	pos  int
}

func newResultIterator(desc *tuple.TupleDesc, rows []*tuple.Tuple) *ResultIterator {
	return &ResultIterator{desc: desc, rows: rows}
}

func (r *ResultIterator) HasNext() bool {
	return r.pos < len(r.rows)
}

func (r *ResultIterator) Next() *tuple.Tuple {
	t := r.rows[r.pos]
	r.pos++
	return t
}

func (r *ResultIterator) Rewind() {
	r.pos = 0
}

func (r *ResultIterator) GetTupleDesc() *tuple.TupleDesc {
	return r.desc
}
