// Package primitives holds the small value types shared across the storage
// and execution layers: stable identifiers for tables, pages, slots and
// locks, plus the hashing used to derive them from file paths.
package primitives

import "math"

// HashCode represents a hash value (e.g., for keys, page IDs, etc.)
// It is typically computed for fast comparisons or lookups.
type HashCode uint64

// TableID is the stable identifier of a heap file, derived by hashing its
// absolute path. Two files at the same path always produce the same TableID.
type TableID uint64

// SlotID represents a slot number within a page (for tuple storage)
type SlotID uint16

// PageNumber represents a page number within a table
type PageNumber uint64

// LockID uniquely identifies a lock request; used only for logging.
type LockID uint64

// ColumnID identifies a column within a table
type ColumnID uint32

// Sentinel values for invalid/unset identifiers
const (
	// InvalidTableID represents an invalid or unset table ID
	InvalidTableID TableID = 0

	// InvalidSlotID represents an invalid or unset slot ID
	InvalidSlotID SlotID = math.MaxUint16

	InvalidColumnID ColumnID = math.MaxUint32
)
