package heap

import "heapbase/pkg/tuple"

// PageIterator yields a HeapPage's tuples in slot order. It is one-shot:
// once exhausted, it yields no more tuples even if the underlying page
// gains tuples afterward.
type PageIterator struct {
	page *HeapPage
	next int
}

func newPageIterator(p *HeapPage) *PageIterator {
	return &PageIterator{page: p, next: 0}
}

// HasNext reports whether another tuple remains.
func (it *PageIterator) HasNext() bool {
	for i := it.next; i < it.page.numSlots; i++ {
		if it.page.isSlotUsedLocked(i) {
			it.next = i
			return true
		}
	}
	it.next = it.page.numSlots
	return false
}

// Next returns the next tuple and advances the cursor.
func (it *PageIterator) Next() (*tuple.Tuple, bool) {
	if !it.HasNext() {
		return nil, false
	}
	t := it.page.tuples[it.next]
	it.next++
	return t, true
}
