package aggregation

import (
	"heapbase/pkg/dberr"
	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

// Aggregator accumulates tuples via Merge and exposes the per-group results
// via Iterator. When constructed with NoGrouping, every tuple folds into
// one synthetic group.
type Aggregator interface {
	Merge(t *tuple.Tuple) error
	Iterator() (*ResultIterator, error)
	Desc() *tuple.TupleDesc
}

type groupState struct {
	count int64
	sum   int64
	min   int32
	max   int32
	init  bool
}

func (g *groupState) merge(v int32) {
	g.count++
	g.sum += int64(v)
	if !g.init {
		g.min, g.max = v, v
		g.init = true
		return
	}
	if v < g.min {
		g.min = v
	}
	if v > g.max {
		g.max = v
	}
}

func (g *groupState) value(op Op) int32 {
	switch op {
	case Min:
		return g.min
	case Max:
		return g.max
	case Sum:
		return int32(g.sum)
	case Avg:
		if g.count == 0 {
			return 0
		}
		return int32(g.sum / g.count)
	case Count:
		return int32(g.count)
	default:
		return 0
	}
}

// IntAggregator implements grouped/ungrouped aggregation over a numeric
// aggregate field. AVG keeps sum and count separately per group and
// computes the average fresh on read, rather than maintaining a running
// average.
type IntAggregator struct {
	groupField int
	gbType     types.Type
	aggField   int
	aggType    types.Type
	op         Op

	grouped bool
	groups  map[groupKey]*groupState
	order   []groupKey
}

type groupKey struct {
	i int32
	s string
	t types.Type
}

// NewIntAggregator constructs an aggregator over aggField using op, grouped
// by groupField (use NoGrouping for no grouping). gbType is the declared
// group-by field type, checked on every Merge. aggType is the declared
// type of the aggregate field, mirroring how the caller picks between an
// int and a string aggregator up front rather than discovering the field's
// type from the data; any op other than COUNT over a non-integer aggType
// is rejected immediately, here at construction, rather than deferred to
// the first Merge call.
func NewIntAggregator(groupField int, gbType types.Type, aggField int, aggType types.Type, op Op) (*IntAggregator, error) {
	if op != Count && aggType != types.IntType {
		return nil, dberr.Newf(dberr.UnsupportedOp, "aggregate: %s over a non-integer field", op)
	}
	return &IntAggregator{
		groupField: groupField,
		gbType:     gbType,
		aggField:   aggField,
		aggType:    aggType,
		op:         op,
		grouped:    groupField != NoGrouping,
		groups:     make(map[groupKey]*groupState),
	}, nil
}

func (a *IntAggregator) keyFor(t *tuple.Tuple) (groupKey, error) {
	if !a.grouped {
		return groupKey{}, nil
	}
	f := t.GetField(a.groupField)
	if f.GetType() != a.gbType {
		return groupKey{}, dberr.Newf(dberr.TypeMismatch, "aggregate: group-by field is %s, declared %s", f.GetType(), a.gbType)
	}
	switch v := f.(type) {
	case *types.Int32Field:
		return groupKey{i: v.Value, t: types.IntType}, nil
	case *types.StringField:
		return groupKey{s: v.Value, t: types.StringType}, nil
	default:
		return groupKey{}, dberr.Newf(dberr.UnsupportedOp, "aggregate: unsupported group-by field type")
	}
}

// Merge folds t into its group's accumulator.
func (a *IntAggregator) Merge(t *tuple.Tuple) error {
	key, err := a.keyFor(t)
	if err != nil {
		return err
	}

	aggf := t.GetField(a.aggField)
	if aggf.GetType() != a.aggType {
		return dberr.Newf(dberr.TypeMismatch, "aggregate: aggregate field is %s, declared %s", aggf.GetType(), a.aggType)
	}
	var v int32
	if f, ok := aggf.(*types.Int32Field); ok {
		v = f.Value
	}

	g, ok := a.groups[key]
	if !ok {
		g = &groupState{}
		a.groups[key] = g
		a.order = append(a.order, key)
	}
	g.merge(v)
	return nil
}

// Desc reports the result schema: one column for the aggregate value, plus
// a leading group-by column when grouped.
func (a *IntAggregator) Desc() *tuple.TupleDesc {
	if a.grouped {
		return tuple.NewTupleDesc([]types.Type{a.gbType, types.IntType}, []string{"groupVal", "aggregateVal"}, nil)
	}
	return tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"aggregateVal"}, nil)
}

// Iterator returns the per-group results, one tuple per group, matching
// the schema Desc reports.
func (a *IntAggregator) Iterator() (*ResultIterator, error) {
	desc := a.Desc()
	rows := make([]*tuple.Tuple, 0, len(a.groups))
	for _, key := range a.order {
		g := a.groups[key]
		val := types.NewInt32Field(g.value(a.op))
		if !a.grouped {
			rows = append(rows, tuple.NewTuple(desc, []types.Field{val}))
			continue
		}
		var gv types.Field
		if key.t == types.StringType {
			gv = types.NewStringField(key.s, types.StringMaxSize)
		} else {
			gv = types.NewInt32Field(key.i)
		}
		rows = append(rows, tuple.NewTuple(desc, []types.Field{gv, val}))
	}
	return newResultIterator(desc, rows), nil
}
