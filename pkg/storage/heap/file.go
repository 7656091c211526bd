package heap

import (
	"fmt"
	"os"
	"sync"

	"heapbase/pkg/dberr"
	"heapbase/pkg/primitives"
	"heapbase/pkg/storage/page"
	"heapbase/pkg/tuple"
)

// HeapFile is a sequential array of HeapPages on disk. Its table-id is a
// stable hash of its absolute path. Page p lives at byte offset
// p*pageSize.
type HeapFile struct {
	path     primitives.Filepath
	tableID  primitives.TableID
	desc     *tuple.TupleDesc
	pageSize int

	mu      sync.Mutex
	file    *os.File
	fetcher page.Fetcher
}

// NewHeapFile opens (creating if absent) the heap file at path with the
// given schema and page size.
func NewHeapFile(path primitives.Filepath, desc *tuple.TupleDesc, pageSize int) (*HeapFile, error) {
	abs, err := path.Abs()
	if err != nil {
		return nil, fmt.Errorf("resolving heap file path: %w", err)
	}
	f, err := os.OpenFile(string(abs), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening heap file %s: %w", abs, err)
	}
	return &HeapFile{
		path:     abs,
		tableID:  abs.Hash(),
		desc:     desc,
		pageSize: pageSize,
		file:     f,
	}, nil
}

// SetFetcher wires the HeapFile to the buffer pool it routes insert/delete
// page acquisitions through. Must be called before InsertTuple/DeleteTuple.
func (f *HeapFile) SetFetcher(fetcher page.Fetcher) {
	f.fetcher = fetcher
}

func (f *HeapFile) GetID() primitives.TableID {
	return f.tableID
}

func (f *HeapFile) GetTupleDesc() *tuple.TupleDesc {
	return f.desc
}

// NumPages reports ceil(fileLength / pageSize).
func (f *HeapFile) NumPages() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.numPagesLocked()
}

func (f *HeapFile) numPagesLocked() int {
	info, err := f.file.Stat()
	if err != nil {
		return 0
	}
	return int((info.Size() + int64(f.pageSize) - 1) / int64(f.pageSize))
}

// ReadPage seeks to pid.PageNo()*pageSize and parses a HeapPage. Fails with
// InvalidPage if the read goes past the file's length or is short.
func (f *HeapFile) ReadPage(pid page.PageID) (page.Page, error) {
	hpid, ok := pid.(*page.HeapPageID)
	if !ok {
		return nil, dberr.New(dberr.InvalidPage, "pid is not a HeapPageID")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	offset := int64(hpid.PageNumber) * int64(f.pageSize)
	info, err := f.file.Stat()
	if err != nil {
		return nil, dberr.Wrap(dberr.InvalidPage, err, "statting heap file")
	}
	if offset+int64(f.pageSize) > info.Size() {
		return nil, dberr.Newf(dberr.InvalidPage, "page %d is beyond file length", hpid.PageNumber)
	}

	data := make([]byte, f.pageSize)
	n, err := f.file.ReadAt(data, offset)
	if err != nil || n != f.pageSize {
		return nil, dberr.Wrap(dberr.InvalidPage, err, fmt.Sprintf("short read of page %d", hpid.PageNumber))
	}

	return NewHeapPage(hpid, f.desc, data, f.pageSize)
}

// WritePage seeks to the page's offset and writes exactly pageSize bytes,
// extending the file if necessary.
func (f *HeapFile) WritePage(p page.Page) error {
	hpid, ok := p.GetID().(*page.HeapPageID)
	if !ok {
		return dberr.New(dberr.InvalidPage, "page id is not a HeapPageID")
	}

	data, err := p.GetPageData()
	if err != nil {
		return fmt.Errorf("serializing page %s: %w", hpid, err)
	}
	if len(data) != f.pageSize {
		return dberr.Newf(dberr.CorruptPage, "serialized page %s has %d bytes, want %d", hpid, len(data), f.pageSize)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	offset := int64(hpid.PageNumber) * int64(f.pageSize)
	if _, err := f.file.WriteAt(data, offset); err != nil {
		return fmt.Errorf("writing page %s: %w", hpid, err)
	}
	return f.file.Sync()
}

// appendEmptyPage extends the file by one empty page and returns its
// HeapPageID.
func (f *HeapFile) appendEmptyPage() (*page.HeapPageID, error) {
	f.mu.Lock()
	pageNo := f.numPagesLocked()
	f.mu.Unlock()

	pid := page.NewHeapPageID(f.tableID, primitives.PageNumber(pageNo)) // #nosec G115

	f.mu.Lock()
	defer f.mu.Unlock()
	offset := int64(pageNo) * int64(f.pageSize)
	if _, err := f.file.WriteAt(EmptyPageData(f.pageSize), offset); err != nil {
		return nil, fmt.Errorf("extending heap file: %w", err)
	}
	if err := f.file.Sync(); err != nil {
		return nil, fmt.Errorf("syncing extended heap file: %w", err)
	}
	return pid, nil
}

// InsertTuple scans existing pages for one with a free slot (each acquired
// READ_WRITE through the buffer pool), and if none has room, appends a
// fresh page and inserts into that.
func (f *HeapFile) InsertTuple(tid any, t *tuple.Tuple) ([]page.Page, error) {
	if f.fetcher == nil {
		return nil, fmt.Errorf("heap file %d: no fetcher wired", f.tableID)
	}

	numPages := f.NumPages()
	for i := 0; i < numPages; i++ {
		pid := page.NewHeapPageID(f.tableID, primitives.PageNumber(i)) // #nosec G115
		p, err := f.fetcher.GetPage(tid, pid, page.ReadWrite)
		if err != nil {
			return nil, fmt.Errorf("acquiring page %d for insert: %w", i, err)
		}
		hp := p.(*HeapPage)
		if hp.GetNumEmptySlots() == 0 {
			continue
		}
		if err := hp.InsertTuple(t); err != nil {
			return nil, err
		}
		return []page.Page{hp}, nil
	}

	newPid, err := f.appendEmptyPage()
	if err != nil {
		return nil, err
	}
	p, err := f.fetcher.GetPage(tid, newPid, page.ReadWrite)
	if err != nil {
		return nil, fmt.Errorf("acquiring new page for insert: %w", err)
	}
	hp := p.(*HeapPage)
	if err := hp.InsertTuple(t); err != nil {
		return nil, err
	}
	return []page.Page{hp}, nil
}

// DeleteTuple acquires the page named by t's RecordID READ_WRITE and
// deletes t from it.
func (f *HeapFile) DeleteTuple(tid any, t *tuple.Tuple) ([]page.Page, error) {
	if f.fetcher == nil {
		return nil, fmt.Errorf("heap file %d: no fetcher wired", f.tableID)
	}
	rid := t.GetRecordID()
	if rid == nil {
		return nil, dberr.New(dberr.TupleNotOnPage, "tuple has no record id")
	}
	pid, ok := rid.PageID.(page.PageID)
	if !ok {
		return nil, dberr.New(dberr.TupleNotOnPage, "tuple's record id has no valid page id")
	}

	p, err := f.fetcher.GetPage(tid, pid, page.ReadWrite)
	if err != nil {
		return nil, fmt.Errorf("acquiring page for delete: %w", err)
	}
	hp := p.(*HeapPage)
	if err := hp.DeleteTuple(t); err != nil {
		return nil, err
	}
	return []page.Page{hp}, nil
}

// Iterator returns a lazy scan over this file's tuples, acquiring each page
// READ_ONLY through the buffer pool as it is visited.
func (f *HeapFile) Iterator(tid any) *FileIterator {
	return newFileIterator(f, tid)
}

// Close releases the underlying OS file handle.
func (f *HeapFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Close()
}
