package tuple

import (
	"fmt"

	"heapbase/pkg/primitives"
)

// PageID is the minimal page-identity contract RecordID needs: a table and
// a page number. storage/page.PageID satisfies this.
type PageID interface {
	GetTableID() primitives.TableID
	PageNo() primitives.PageNumber
}

// RecordID locates a tuple: the page it lives on plus its slot index. It is
// a plain value, never a live reference into a cached page — pages are
// owned by the buffer pool and may be evicted independently of any Tuple
// holding a RecordID that points into them.
type RecordID struct {
	PageID PageID
	Slot   primitives.SlotID
}

// NewRecordID constructs a RecordID.
func NewRecordID(pageID PageID, slot primitives.SlotID) RecordID {
	return RecordID{PageID: pageID, Slot: slot}
}

// Equals reports whether two RecordIDs name the same (table, page, slot).
func (r RecordID) Equals(other RecordID) bool {
	if r.Slot != other.Slot {
		return false
	}
	if r.PageID == nil || other.PageID == nil {
		return r.PageID == other.PageID
	}
	return r.PageID.GetTableID() == other.PageID.GetTableID() &&
		r.PageID.PageNo() == other.PageID.PageNo()
}

func (r RecordID) String() string {
	if r.PageID == nil {
		return "RecordID(nil)"
	}
	return fmt.Sprintf("RecordID(table=%d, page=%d, slot=%d)", r.PageID.GetTableID(), r.PageID.PageNo(), r.Slot)
}
