package operators

import (
	"testing"

	"github.com/stretchr/testify/require"

	"heapbase/pkg/dberr"
	"heapbase/pkg/primitives"
	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

type fakeMutator struct {
	inserted []*tuple.Tuple
	deleted  []*tuple.Tuple
}

func (m *fakeMutator) InsertTuple(tid any, tableID primitives.TableID, t *tuple.Tuple) error {
	m.inserted = append(m.inserted, t)
	return nil
}

func (m *fakeMutator) DeleteTuple(tid any, t *tuple.Tuple) error {
	m.deleted = append(m.deleted, t)
	return nil
}

func TestInsertCountsAndDrainsOnce(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"}, nil)
	mk := func(v int32) *tuple.Tuple {
		return tuple.NewTuple(desc, []types.Field{types.NewInt32Field(v)})
	}
	src := &sliceOperator{desc: desc, rows: []*tuple.Tuple{mk(1), mk(2), mk(3)}}

	m := &fakeMutator{}
	ins, err := NewInsert("t1", src, 7, desc, m)
	require.NoError(t, err)

	require.NoError(t, ins.Open())
	has, err := ins.HasNext()
	require.NoError(t, err)
	require.True(t, has)

	row, err := ins.Next()
	require.NoError(t, err)
	require.Equal(t, int32(3), row.GetField(0).(*types.Int32Field).Value)
	require.Len(t, m.inserted, 3)

	has, err = ins.HasNext()
	require.NoError(t, err)
	require.False(t, has)
}

func TestInsertSchemaMismatchRejectedAtConstruction(t *testing.T) {
	childDesc := tuple.NewTupleDesc([]types.Type{types.StringType}, []string{"s"}, []int{8})
	tableDesc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"}, nil)
	src := &sliceOperator{desc: childDesc}

	_, err := NewInsert("t1", src, 7, tableDesc, &fakeMutator{})
	require.Error(t, err)
	require.Equal(t, dberr.SchemaMismatch, dberr.KindOf(err))
}

func TestDeleteCountsAndDrainsOnce(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"}, nil)
	mk := func(v int32) *tuple.Tuple {
		return tuple.NewTuple(desc, []types.Field{types.NewInt32Field(v)})
	}
	src := &sliceOperator{desc: desc, rows: []*tuple.Tuple{mk(1), mk(2)}}

	m := &fakeMutator{}
	del := NewDelete("t1", src, m)

	require.NoError(t, del.Open())
	row, err := del.Next()
	require.NoError(t, err)
	require.Equal(t, int32(2), row.GetField(0).(*types.Int32Field).Value)
	require.Len(t, m.deleted, 2)
}
