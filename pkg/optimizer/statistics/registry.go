package statistics

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/sync/errgroup"

	"heapbase/pkg/catalog"
	"heapbase/pkg/storage/heap"
)

// Registry is the process-wide name -> TableStats cache computeStatistics
// populates. Backed by ristretto so repeated lookups during
// planning avoid recomputation while still allowing cost-based eviction if
// the catalog ever holds more tables than fit comfortably in memory.
type Registry struct {
	cache *ristretto.Cache[string, *TableStats]
}

// NewRegistry constructs an empty statistics registry.
func NewRegistry() (*Registry, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *TableStats]{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("statistics: new registry: %w", err)
	}
	return &Registry{cache: cache}, nil
}

// Get returns the cached TableStats for name, if present.
func (r *Registry) Get(name string) (*TableStats, bool) {
	return r.cache.Get(name)
}

func (r *Registry) set(name string, stats *TableStats) {
	r.cache.Set(name, stats, 1)
}

// ComputeStatistics iterates cat's tables concurrently (one goroutine per
// table, via errgroup) and populates r with each table's TableStats.
func (r *Registry) ComputeStatistics(ctx context.Context, cat catalog.Catalog, ioCostPerPage float64) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, tableID := range cat.TableIDs() {
		tableID := tableID
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			name, err := cat.GetTableName(tableID)
			if err != nil {
				return err
			}
			dbFile, err := cat.GetDatabaseFile(tableID)
			if err != nil {
				return err
			}
			hf, ok := dbFile.(*heap.HeapFile)
			if !ok {
				return fmt.Errorf("statistics: table %q is not a heap file", name)
			}
			stats, err := NewTableStats(tableID, hf, ioCostPerPage)
			if err != nil {
				return fmt.Errorf("statistics: computing stats for %q: %w", name, err)
			}
			r.set(name, stats)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.cache.Wait()
	return nil
}
