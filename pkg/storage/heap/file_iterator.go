package heap

import (
	"heapbase/pkg/primitives"
	"heapbase/pkg/storage/page"
	"heapbase/pkg/tuple"
)

// FileIterator lazily scans a HeapFile's pages in order, acquiring each
// READ_ONLY through the buffer pool as it is visited. Rewind reopens at
// page 0. A closed iterator yields no more tuples.
type FileIterator struct {
	file    *HeapFile
	tid     any
	pageNo  int
	cur     *PageIterator
	closed  bool
	started bool
}

func newFileIterator(f *HeapFile, tid any) *FileIterator {
	return &FileIterator{file: f, tid: tid}
}

// Open positions the iterator at page 0, lazily.
func (it *FileIterator) Open() error {
	it.pageNo = 0
	it.cur = nil
	it.closed = false
	it.started = true
	return nil
}

func (it *FileIterator) advancePage() (bool, error) {
	for it.pageNo < it.file.NumPages() {
		pid := page.NewHeapPageID(it.file.tableID, primitives.PageNumber(it.pageNo)) // #nosec G115
		p, err := it.file.fetcher.GetPage(it.tid, pid, page.ReadOnly)
		if err != nil {
			return false, err
		}
		it.pageNo++
		it.cur = p.(*HeapPage).Iterator()
		if it.cur.HasNext() {
			return true, nil
		}
	}
	return false, nil
}

// HasNext reports whether another tuple remains.
func (it *FileIterator) HasNext() (bool, error) {
	if it.closed || !it.started {
		return false, nil
	}
	if it.cur != nil && it.cur.HasNext() {
		return true, nil
	}
	return it.advancePage()
}

// Next returns the next tuple, advancing across pages as needed.
func (it *FileIterator) Next() (*tuple.Tuple, error) {
	ok, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	t, _ := it.cur.Next()
	return t, nil
}

// Rewind reopens the scan at page 0.
func (it *FileIterator) Rewind() error {
	return it.Open()
}

// Close marks the iterator exhausted.
func (it *FileIterator) Close() {
	it.closed = true
	it.cur = nil
}
