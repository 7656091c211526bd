package aggregation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"heapbase/pkg/dberr"
	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

func gvTuple(desc *tuple.TupleDesc, g string, v int32) *tuple.Tuple {
	return tuple.NewTuple(desc, []types.Field{types.NewStringField(g, 8), types.NewInt32Field(v)})
}

func vOnlyTuple(desc *tuple.TupleDesc, v int32) *tuple.Tuple {
	return tuple.NewTuple(desc, []types.Field{types.NewInt32Field(v)})
}

// TestGroupedSum exercises scenario 6: SUM grouped by a string key.
func TestGroupedSum(t *testing.T) {
	inDesc := tuple.NewTupleDesc([]types.Type{types.StringType, types.IntType}, []string{"g", "v"}, []int{8})

	agg, err := NewIntAggregator(0, types.StringType, 1, types.IntType, Sum)
	require.NoError(t, err)
	require.NoError(t, agg.Merge(gvTuple(inDesc, "a", 1)))
	require.NoError(t, agg.Merge(gvTuple(inDesc, "b", 2)))
	require.NoError(t, agg.Merge(gvTuple(inDesc, "a", 3)))

	it, err := agg.Iterator()
	require.NoError(t, err)

	got := map[string]int32{}
	for it.HasNext() {
		row := it.Next()
		g := row.GetField(0).(*types.StringField).Value
		v := row.GetField(1).(*types.Int32Field).Value
		got[g] = v
	}
	require.Equal(t, map[string]int32{"a": 4, "b": 2}, got)
}

func TestUngroupedAvgKeepsSumAndCountSeparate(t *testing.T) {
	inDesc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"}, nil)
	agg, err := NewIntAggregator(NoGrouping, types.IntType, 0, types.IntType, Avg)
	require.NoError(t, err)

	for _, v := range []int32{1, 2, 3, 4} {
		require.NoError(t, agg.Merge(vOnlyTuple(inDesc, v)))
	}

	it, err := agg.Iterator()
	require.NoError(t, err)
	require.True(t, it.HasNext())
	row := it.Next()
	require.Equal(t, int32(2), row.GetField(0).(*types.Int32Field).Value) // floor(10/4)
	require.False(t, it.HasNext())
}

func TestCountOverStringField(t *testing.T) {
	inDesc := tuple.NewTupleDesc([]types.Type{types.StringType}, []string{"s"}, []int{8})
	agg, err := NewIntAggregator(NoGrouping, types.IntType, 0, types.StringType, Count)
	require.NoError(t, err)

	require.NoError(t, agg.Merge(tuple.NewTuple(inDesc, []types.Field{types.NewStringField("x", 8)})))
	require.NoError(t, agg.Merge(tuple.NewTuple(inDesc, []types.Field{types.NewStringField("y", 8)})))

	it, err := agg.Iterator()
	require.NoError(t, err)
	row := it.Next()
	require.Equal(t, int32(2), row.GetField(0).(*types.Int32Field).Value)
}

// TestSumOverStringFieldIsUnsupported asserts that SUM over a declared
// string aggregate field is rejected at construction, not discovered lazily
// on the first Merge.
func TestSumOverStringFieldIsUnsupported(t *testing.T) {
	_, err := NewIntAggregator(NoGrouping, types.IntType, 0, types.StringType, Sum)
	require.Error(t, err)
	require.Equal(t, dberr.UnsupportedOp, dberr.KindOf(err))
}

func TestGroupByTypeMismatch(t *testing.T) {
	inDesc := tuple.NewTupleDesc([]types.Type{types.IntType, types.IntType}, []string{"g", "v"}, nil)
	agg, err := NewIntAggregator(0, types.StringType, 1, types.IntType, Sum)
	require.NoError(t, err)

	err = agg.Merge(tuple.NewTuple(inDesc, []types.Field{types.NewInt32Field(1), types.NewInt32Field(1)}))
	require.Error(t, err)
}

func TestResultSchema(t *testing.T) {
	ungrouped, err := NewIntAggregator(NoGrouping, types.IntType, 0, types.StringType, Count)
	require.NoError(t, err)
	require.Equal(t, 1, ungrouped.Desc().NumFields())

	grouped, err := NewIntAggregator(0, types.StringType, 1, types.IntType, Sum)
	require.NoError(t, err)
	require.Equal(t, 2, grouped.Desc().NumFields())
	require.Equal(t, types.StringType, grouped.Desc().FieldType(0))
	require.Equal(t, types.IntType, grouped.Desc().FieldType(1))
}
