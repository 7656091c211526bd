package page

import (
	"fmt"

	"heapbase/pkg/primitives"
)

// HeapPageID is the (table-id, page-number) pair identifying a heap page.
// It satisfies PageID by value: equality and hashing are structural.
type HeapPageID struct {
	TableID    primitives.TableID
	PageNumber primitives.PageNumber
}

// NewHeapPageID constructs a HeapPageID.
func NewHeapPageID(tableID primitives.TableID, pageNumber primitives.PageNumber) *HeapPageID {
	return &HeapPageID{TableID: tableID, PageNumber: pageNumber}
}

func (p *HeapPageID) GetTableID() primitives.TableID {
	return p.TableID
}

func (p *HeapPageID) PageNo() primitives.PageNumber {
	return p.PageNumber
}

func (p *HeapPageID) Equals(other PageID) bool {
	o, ok := other.(*HeapPageID)
	if !ok {
		return false
	}
	return p.TableID == o.TableID && p.PageNumber == o.PageNumber
}

func (p *HeapPageID) HashCode() primitives.HashCode {
	return primitives.HashCode(uint64(p.TableID)*31 + uint64(p.PageNumber))
}

func (p *HeapPageID) String() string {
	return fmt.Sprintf("HeapPageID(table=%d, page=%d)", p.TableID, p.PageNumber)
}
