package operators

import (
	"testing"

	"github.com/stretchr/testify/require"

	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

// sliceOperator replays a fixed slice of tuples; its child accessors are
// unused since it is always a leaf in these tests.
type sliceOperator struct {
	desc *tuple.TupleDesc
	rows []*tuple.Tuple
	pos  int
}

func (s *sliceOperator) Open() error             { s.pos = 0; return nil }
func (s *sliceOperator) HasNext() (bool, error)  { return s.pos < len(s.rows), nil }
func (s *sliceOperator) Next() (*tuple.Tuple, error) {
	t := s.rows[s.pos]
	s.pos++
	return t, nil
}
func (s *sliceOperator) Rewind() error                   { s.pos = 0; return nil }
func (s *sliceOperator) Close()                          {}
func (s *sliceOperator) GetTupleDesc() *tuple.TupleDesc  { return s.desc }
func (s *sliceOperator) GetChildren() []Operator         { return nil }
func (s *sliceOperator) SetChildren(children []Operator) error { return nil }

// countingField wraps an Int32Field and counts Compare calls, to verify
// Filter evaluates its predicate exactly once per tuple, not once per
// field (the explicit fix over the source's fetchNext behavior).
type countingField struct {
	*types.Int32Field
	calls *int
}

func (c *countingField) Compare(op types.Predicate, other types.Field) (bool, error) {
	*c.calls++
	return c.Int32Field.Compare(op, other)
}

func TestFilterEvaluatesPredicateOncePerTuple(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType, types.IntType}, []string{"a", "b"}, nil)
	calls := 0
	mk := func(a, b int32) *tuple.Tuple {
		fa := &countingField{Int32Field: types.NewInt32Field(a), calls: &calls}
		return tuple.NewTuple(desc, []types.Field{fa, types.NewInt32Field(b)})
	}

	rows := []*tuple.Tuple{mk(1, 10), mk(2, 20), mk(3, 30)}
	src := &sliceOperator{desc: desc, rows: rows}

	pred := NewPredicate(0, types.GreaterThan, types.NewInt32Field(1))
	f := NewFilter(pred, src)

	require.NoError(t, f.Open())
	var got []int32
	for {
		has, err := f.HasNext()
		require.NoError(t, err)
		if !has {
			break
		}
		row, err := f.Next()
		require.NoError(t, err)
		got = append(got, row.GetField(1).(*types.Int32Field).Value)
	}
	require.Equal(t, []int32{20, 30}, got)
	require.Equal(t, 3, calls) // once per input tuple, not once per field
}

func TestFilterRewind(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"}, nil)
	mk := func(v int32) *tuple.Tuple {
		return tuple.NewTuple(desc, []types.Field{types.NewInt32Field(v)})
	}
	src := &sliceOperator{desc: desc, rows: []*tuple.Tuple{mk(1), mk(2)}}
	pred := NewPredicate(0, types.Equals, types.NewInt32Field(1))
	f := NewFilter(pred, src)

	require.NoError(t, f.Open())
	has, err := f.HasNext()
	require.NoError(t, err)
	require.True(t, has)
	_, err = f.Next()
	require.NoError(t, err)
	has, err = f.HasNext()
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, f.Rewind())
	has, err = f.HasNext()
	require.NoError(t, err)
	require.True(t, has)
}
