// Package page defines the storage-layer contracts shared by every page
// format and file format in this module: PageID, Page and DbFile. HeapPage
// and HeapFile (in storage/heap) are the only implementations, but the
// buffer pool and lock manager are written against these interfaces so a
// second page format could be added without touching them.
package page

import (
	"heapbase/pkg/primitives"
	"heapbase/pkg/tuple"
)

// PageID identifies a page within a table.
type PageID interface {
	GetTableID() primitives.TableID
	PageNo() primitives.PageNumber
	Equals(other PageID) bool
	HashCode() primitives.HashCode
	String() string
}

// Page is an in-memory page image, mutable only while its holder owns the
// page's X lock (see concurrency/lock). Mutation, dirtying, and the
// before-image used for rollback are all part of this contract.
type Page interface {
	GetID() PageID

	// GetPageData serializes the page to its fixed-size on-disk form.
	GetPageData() ([]byte, error)

	// IsDirty reports whether the page has been modified since it was
	// last read from or written to disk, and if so by which transaction.
	IsDirty() (bool, any)

	// MarkDirty sets or clears the dirty flag and records the dirtying
	// transaction.
	MarkDirty(dirty bool, tid any)

	// GetBeforeImage returns a snapshot of the page as it was before the
	// current transaction's first mutation, for abort rollback.
	GetBeforeImage() (Page, error)

	// SetBeforeImage snapshots the page's current bytes as its new
	// before-image. Called by the buffer pool right after a page is
	// read from disk or after a transaction commits.
	SetBeforeImage()
}

// DbFile is an on-disk table file: page-granular I/O plus tuple mutation
// routed through pages it owns.
type DbFile interface {
	GetID() primitives.TableID

	ReadPage(pid PageID) (Page, error)
	WritePage(p Page) error

	// NumPages reports the file's current page count.
	NumPages() int

	// InsertTuple and DeleteTuple return the pages whose in-memory image
	// was modified, so the caller (the buffer pool) can mark them dirty
	// and reinstate them in cache.
	InsertTuple(tid any, t *tuple.Tuple) ([]Page, error)
	DeleteTuple(tid any, t *tuple.Tuple) ([]Page, error)

	GetTupleDesc() *tuple.TupleDesc
}
