package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"heapbase/pkg/storage/page"
	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

// TestEmptyPageSlotCount checks the slot count for a known page/tuple size.
func TestEmptyPageSlotCount(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType, types.IntType}, []string{"a", "b"}, nil)
	pid := page.NewHeapPageID(1, 0)

	p := NewEmptyHeapPage(pid, desc, 4096)
	require.Equal(t, 504, p.GetNumEmptySlots())
}

func TestRoundTripSerialization(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"}, nil)
	pid := page.NewHeapPageID(1, 0)

	p := NewEmptyHeapPage(pid, desc, 4096)
	for _, v := range []int32{10, 20, 30} {
		tup := tuple.NewTuple(desc, []types.Field{types.NewInt32Field(v)})
		require.NoError(t, p.InsertTuple(tup))
	}

	data, err := p.GetPageData()
	require.NoError(t, err)
	require.Len(t, data, 4096)

	p2, err := NewHeapPage(pid, desc, data, 4096)
	require.NoError(t, err)

	var got []int32
	it := p2.Iterator()
	for it.HasNext() {
		tup, ok := it.Next()
		require.True(t, ok)
		got = append(got, tup.GetField(0).(*types.Int32Field).Value)
	}
	require.ElementsMatch(t, []int32{10, 20, 30}, got)
}

func TestHeaderBitCountMatchesIteratorCount(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"}, nil)
	pid := page.NewHeapPageID(1, 0)
	p := NewEmptyHeapPage(pid, desc, 4096)

	for i := 0; i < 5; i++ {
		tup := tuple.NewTuple(desc, []types.Field{types.NewInt32Field(int32(i))})
		require.NoError(t, p.InsertTuple(tup))
	}

	setBits := 0
	for i := 0; i < p.NumSlots(); i++ {
		if p.IsSlotUsed(i) {
			setBits++
		}
	}

	count := 0
	it := p.Iterator()
	for it.HasNext() {
		_, ok := it.Next()
		require.True(t, ok)
		count++
	}
	require.Equal(t, setBits, count)
}

func TestInsertFailsOnFullPage(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"}, nil)
	pid := page.NewHeapPageID(1, 0)
	p := NewEmptyHeapPage(pid, desc, 4096)

	for i := 0; i < p.NumSlots(); i++ {
		tup := tuple.NewTuple(desc, []types.Field{types.NewInt32Field(int32(i))})
		require.NoError(t, p.InsertTuple(tup))
	}

	overflow := tuple.NewTuple(desc, []types.Field{types.NewInt32Field(999)})
	err := p.InsertTuple(overflow)
	require.Error(t, err)
}

func TestDeleteRoundTrip(t *testing.T) {
	desc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"}, nil)
	pid := page.NewHeapPageID(1, 0)
	p := NewEmptyHeapPage(pid, desc, 4096)

	tup := tuple.NewTuple(desc, []types.Field{types.NewInt32Field(42)})
	require.NoError(t, p.InsertTuple(tup))
	require.Equal(t, p.NumSlots()-1, p.GetNumEmptySlots())

	require.NoError(t, p.DeleteTuple(tup))
	require.Equal(t, p.NumSlots(), p.GetNumEmptySlots())
}
