// Package heap implements the on-disk heap file format: a bitmap-header
// slotted page (HeapPage) and the sequential-file table storage built on
// top of it (HeapFile).
package heap

import (
	"bytes"
	"fmt"
	"io"

	"heapbase/pkg/dberr"
	"heapbase/pkg/primitives"
	"heapbase/pkg/storage/page"
	"heapbase/pkg/tuple"
)

// HeapPage is a fixed-size buffer laid out as a header bitmap followed by a
// dense array of fixed-size tuple slots:
//
//	[ header: ceil(S/8) bytes ][ slot 0 ][ slot 1 ] ... [ slot S-1 ][ zero padding ]
//
// Slot count S = floor((pageSize*8) / (tupleSize*8 + 1)); header byte count
// H = ceil(S/8). Bit i of the header (LSB-first within each byte) marks
// slot i used. Unused-slot bytes are not interpreted on read-back (they
// need not be zero) and are written back as zeros.
type HeapPage struct {
	id       *page.HeapPageID
	desc     *tuple.TupleDesc
	pageSize int

	numSlots   int
	headerSize int

	header []byte
	tuples []*tuple.Tuple // nil entry = unused slot

	dirty    bool
	dirtyTid any

	beforeImage []byte
}

// NumSlots computes the number of tuple slots a page of pageSize bytes can
// hold for tuples of tupleSize bytes, accounting for the one header bit
// each slot costs.
func NumSlots(pageSize, tupleSize int) int {
	return (pageSize * 8) / (tupleSize*8 + 1)
}

// HeaderSize computes H = ceil(S/8).
func HeaderSize(numSlots int) int {
	return (numSlots + 7) / 8
}

// NewEmptyHeapPage allocates a zero-filled page with no tuples.
func NewEmptyHeapPage(id *page.HeapPageID, desc *tuple.TupleDesc, pageSize int) *HeapPage {
	numSlots := NumSlots(pageSize, desc.TupleSize())
	headerSize := HeaderSize(numSlots)
	return &HeapPage{
		id:         id,
		desc:       desc,
		pageSize:   pageSize,
		numSlots:   numSlots,
		headerSize: headerSize,
		header:     make([]byte, headerSize),
		tuples:     make([]*tuple.Tuple, numSlots),
	}
}

// EmptyPageData returns a zero-filled buffer of pageSize bytes: the on-disk
// form of a freshly-allocated empty page.
func EmptyPageData(pageSize int) []byte {
	return make([]byte, pageSize)
}

// NewHeapPage deserializes a page from its on-disk bytes. Fails with
// CorruptPage if len(data) != pageSize.
func NewHeapPage(id *page.HeapPageID, desc *tuple.TupleDesc, data []byte, pageSize int) (*HeapPage, error) {
	if len(data) != pageSize {
		return nil, dberr.Newf(dberr.CorruptPage, "page %s: expected %d bytes, got %d", id, pageSize, len(data))
	}

	hp := NewEmptyHeapPage(id, desc, pageSize)
	copy(hp.header, data[:hp.headerSize])

	r := bytes.NewReader(data[hp.headerSize:])
	slotSize := desc.TupleSize()
	for i := 0; i < hp.numSlots; i++ {
		slotBytes := make([]byte, slotSize)
		if _, err := io.ReadFull(r, slotBytes); err != nil {
			return nil, dberr.Wrap(dberr.CorruptPage, err, fmt.Sprintf("page %s: reading slot %d", id, i))
		}
		if !hp.isSlotUsedLocked(i) {
			continue
		}
		t, err := tuple.ParseTuple(bytes.NewReader(slotBytes), desc)
		if err != nil {
			return nil, dberr.Wrap(dberr.CorruptPage, err, fmt.Sprintf("page %s: parsing slot %d", id, i))
		}
		t.SetRecordID(tuple.NewRecordID(id, primitives.SlotID(i))) // #nosec G115
		hp.tuples[i] = t
	}

	hp.SetBeforeImage()
	return hp, nil
}

func (p *HeapPage) isSlotUsedLocked(i int) bool {
	byteIdx := i / 8
	bitIdx := uint(i % 8)
	return p.header[byteIdx]&(1<<bitIdx) != 0
}

// IsSlotUsed reports whether slot i is occupied.
func (p *HeapPage) IsSlotUsed(i int) bool {
	return p.isSlotUsedLocked(i)
}

func (p *HeapPage) markSlotUsed(i int, used bool) {
	byteIdx := i / 8
	bitIdx := uint(i % 8)
	if used {
		p.header[byteIdx] |= 1 << bitIdx
	} else {
		p.header[byteIdx] &^= 1 << bitIdx
	}
}

// GetNumEmptySlots counts zero bits in the header's S-bit prefix.
func (p *HeapPage) GetNumEmptySlots() int {
	n := 0
	for i := 0; i < p.numSlots; i++ {
		if !p.isSlotUsedLocked(i) {
			n++
		}
	}
	return n
}

// NumSlots returns S for this page.
func (p *HeapPage) NumSlots() int {
	return p.numSlots
}

// GetID returns the page's identity.
func (p *HeapPage) GetID() page.PageID {
	return p.id
}

// GetTupleDesc returns the page's schema.
func (p *HeapPage) GetTupleDesc() *tuple.TupleDesc {
	return p.desc
}

// findEmptySlotLocked returns the lowest-index empty slot, or InvalidSlotID
// if the page has none.
func (p *HeapPage) findEmptySlotLocked() primitives.SlotID {
	for i := 0; i < p.numSlots; i++ {
		if !p.isSlotUsedLocked(i) {
			return primitives.SlotID(i) // #nosec G115
		}
	}
	return primitives.InvalidSlotID
}

// InsertTuple finds the lowest-index empty slot, stores t there, and
// assigns t's RecordID. Fails with PageFull if no slot is free, or
// SchemaMismatch if t's desc disagrees with the page's.
func (p *HeapPage) InsertTuple(t *tuple.Tuple) error {
	if !t.GetTupleDesc().Equals(p.desc) {
		return dberr.New(dberr.SchemaMismatch, "tuple desc does not match page desc")
	}
	slot := p.findEmptySlotLocked()
	if slot == primitives.InvalidSlotID {
		return dberr.Newf(dberr.PageFull, "page %s has no empty slot", p.id)
	}
	p.markSlotUsed(int(slot), true)
	t.SetRecordID(tuple.NewRecordID(p.id, slot))
	p.tuples[slot] = t
	return nil
}

// DeleteTuple clears the slot holding t. Fails with TupleNotOnPage if t has
// no RecordID, its RecordID does not name this page, the slot is not used,
// or the stored tuple does not equal t.
func (p *HeapPage) DeleteTuple(t *tuple.Tuple) error {
	rid := t.GetRecordID()
	if rid == nil {
		return dberr.New(dberr.TupleNotOnPage, "tuple has no record id")
	}
	if rid.PageID == nil || rid.PageID.GetTableID() != p.id.GetTableID() || rid.PageID.PageNo() != p.id.PageNo() {
		return dberr.New(dberr.TupleNotOnPage, "tuple's record id does not name this page")
	}
	slot := int(rid.Slot)
	if slot < 0 || slot >= p.numSlots || !p.isSlotUsedLocked(slot) {
		return dberr.New(dberr.TupleNotOnPage, "slot is not in use")
	}
	if p.tuples[slot] == nil || !p.tuples[slot].Equals(t) {
		return dberr.New(dberr.TupleNotOnPage, "stored tuple does not match")
	}
	p.markSlotUsed(slot, false)
	p.tuples[slot] = nil
	return nil
}

// Iterator yields the page's tuples in slot order. One-shot: once
// exhausted it is not restartable (callers construct a new one via
// HeapPage.Iterator to restart).
func (p *HeapPage) Iterator() *PageIterator {
	return newPageIterator(p)
}

// GetPageData serializes the page: header, then each slot's bytes in
// order (used slots carry their tuple; unused slots are zero-filled),
// zero-padded to pageSize.
func (p *HeapPage) GetPageData() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, p.pageSize))
	buf.Write(p.header)

	slotSize := p.desc.TupleSize()
	for i := 0; i < p.numSlots; i++ {
		if p.isSlotUsedLocked(i) && p.tuples[i] != nil {
			if err := p.tuples[i].Serialize(buf); err != nil {
				return nil, fmt.Errorf("serializing slot %d: %w", i, err)
			}
			continue
		}
		buf.Write(make([]byte, slotSize))
	}

	out := buf.Bytes()
	if len(out) < p.pageSize {
		out = append(out, make([]byte, p.pageSize-len(out))...)
	}
	return out[:p.pageSize], nil
}

func (p *HeapPage) IsDirty() (bool, any) {
	return p.dirty, p.dirtyTid
}

func (p *HeapPage) MarkDirty(dirty bool, tid any) {
	p.dirty = dirty
	if dirty {
		p.dirtyTid = tid
	} else {
		p.dirtyTid = nil
	}
}

// GetBeforeImage returns a fresh HeapPage parsed from the bytes captured at
// the last SetBeforeImage call, for abort rollback.
func (p *HeapPage) GetBeforeImage() (page.Page, error) {
	if p.beforeImage == nil {
		return nil, fmt.Errorf("page %s: no before-image captured", p.id)
	}
	return NewHeapPage(p.id, p.desc, p.beforeImage, p.pageSize)
}

// SetBeforeImage snapshots the page's current bytes as its before-image.
func (p *HeapPage) SetBeforeImage() {
	data, err := p.GetPageData()
	if err != nil {
		return
	}
	p.beforeImage = data
}
