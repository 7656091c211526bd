package statistics

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"heapbase/pkg/catalog"
	"heapbase/pkg/logging"
	"heapbase/pkg/memory"
	"heapbase/pkg/primitives"
	"heapbase/pkg/storage/heap"
	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

func newTestTable(t *testing.T, name string, rows []int32) (*catalog.InMemory, *memory.BufferPool, *heap.HeapFile) {
	t.Helper()
	dir := t.TempDir()
	desc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"}, nil)

	file, err := heap.NewHeapFile(primitives.Filepath(filepath.Join(dir, name+".dat")), desc, 4096)
	require.NoError(t, err)

	cat := catalog.NewInMemory()
	cat.AddTable(file, name)

	pool := memory.NewBufferPool(cat, 50, logging.Nop())
	file.SetFetcher(pool)

	tid := "setup-tid"
	for _, v := range rows {
		row := tuple.NewTuple(desc, []types.Field{types.NewInt32Field(v)})
		require.NoError(t, pool.InsertTuple(tid, file.GetID(), row))
	}
	require.NoError(t, pool.TransactionComplete(tid, true))

	return cat, pool, file
}

func TestTableStatsTwoPassScan(t *testing.T) {
	_, _, file := newTestTable(t, "nums", []int32{5, 1, 9, 3})

	stats, err := NewTableStats(file.GetID(), file, 2.0)
	require.NoError(t, err)

	require.Equal(t, float64(file.NumPages())*2.0, stats.EstimateScanCost())
	require.Equal(t, 4, stats.EstimateTableCardinality(1.0))

	sel, err := stats.EstimateSelectivity(0, types.Equals, types.NewInt32Field(5))
	require.NoError(t, err)
	require.GreaterOrEqual(t, sel, 0.0)
	require.LessOrEqual(t, sel, 1.0)
}

func TestRegistryComputeStatistics(t *testing.T) {
	cat, _, _ := newTestTable(t, "nums", []int32{1, 2, 3})

	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.ComputeStatistics(context.Background(), cat, 1.0))

	stats, ok := reg.Get("nums")
	require.True(t, ok)
	require.Equal(t, 3, stats.EstimateTableCardinality(1.0))
}
