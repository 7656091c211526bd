package tuple_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"heapbase/pkg/dberr"
	"heapbase/pkg/primitives"
	"heapbase/pkg/storage/page"
	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

func TestTupleSerializeParseRoundTrip(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType, types.StringType}, []string{"a", "b"}, []int{0, 8})
	tup := tuple.NewTuple(desc, []types.Field{types.NewInt32Field(7), types.NewStringField("hi", 8)})

	var buf bytes.Buffer
	require.NoError(t, tup.Serialize(&buf))

	got, err := tuple.ParseTuple(&buf, desc)
	require.NoError(t, err)
	require.True(t, tup.Equals(got))
}

func TestTupleDescEqualsIgnoresNames(t *testing.T) {
	a := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"x"}, nil)
	b := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"y"}, nil)
	require.True(t, a.Equals(b))
}

func TestTupleDescTupleSize(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType, types.IntType}, []string{"a", "b"}, nil)
	require.Equal(t, 8, desc.TupleSize())
}

func TestTupleDescFindField(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType, types.StringType}, []string{"a", "b"}, nil)

	idx, err := desc.FindField("b")
	require.NoError(t, err)
	require.Equal(t, primitives.ColumnID(1), idx)

	_, err = desc.FindField("missing")
	require.Error(t, err)
	require.Equal(t, dberr.SchemaMismatch, dberr.KindOf(err))
}

func TestRecordIDEquality(t *testing.T) {
	pid := page.NewHeapPageID(1, 0)
	a := tuple.NewRecordID(pid, 3)
	b := tuple.NewRecordID(pid, 3)
	require.True(t, a.Equals(b))
}
