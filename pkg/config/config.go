// Package config holds process-wide defaults: an atomically-swappable page
// size and a default buffer pool capacity constant. No other package reads
// them: HeapFile and BufferPool take their page size and capacity as
// constructor arguments.
package config

import "sync/atomic"

const (
	// DefaultPageSize is the page size new pools and files use unless
	// overridden.
	DefaultPageSize = 4096

	// DefaultBufferPoolPages is the default buffer pool capacity in pages.
	DefaultBufferPoolPages = 50
)

var pageSize atomic.Int64

func init() {
	pageSize.Store(DefaultPageSize)
}

// PageSize returns the current process-wide page size in bytes.
func PageSize() int {
	return int(pageSize.Load())
}

// SetPageSize overrides the process-wide page size until ResetPageSize is
// called.
func SetPageSize(n int) {
	pageSize.Store(int64(n))
}

// ResetPageSize restores the default page size.
func ResetPageSize() {
	pageSize.Store(DefaultPageSize)
}
