package operators

import (
	"fmt"

	"heapbase/pkg/primitives"
	"heapbase/pkg/storage/heap"
	"heapbase/pkg/tuple"
)

// SeqScan is the leaf operator that drives a HeapFile's iterator: the
// minimal plumbing Filter/Insert/Delete need to sit over real table data,
// pulling from a HeapFile's per-file tuple iterator.
type SeqScan struct {
	tid  any
	file *heap.HeapFile

	it *heap.FileIterator
}

// NewSeqScan constructs a scan of file under transaction tid.
func NewSeqScan(tid any, file *heap.HeapFile) *SeqScan {
	return &SeqScan{tid: tid, file: file}
}

func (s *SeqScan) Open() error {
	s.it = s.file.Iterator(s.tid)
	return s.it.Open()
}

func (s *SeqScan) HasNext() (bool, error) {
	if s.it == nil {
		return false, fmt.Errorf("seqscan: not open")
	}
	return s.it.HasNext()
}

func (s *SeqScan) Next() (*tuple.Tuple, error) {
	if s.it == nil {
		return nil, fmt.Errorf("seqscan: not open")
	}
	return s.it.Next()
}

func (s *SeqScan) Rewind() error {
	if s.it == nil {
		return fmt.Errorf("seqscan: not open")
	}
	return s.it.Rewind()
}

func (s *SeqScan) Close() {
	if s.it != nil {
		s.it.Close()
	}
}

func (s *SeqScan) GetTupleDesc() *tuple.TupleDesc {
	return s.file.GetTupleDesc()
}

func (s *SeqScan) GetChildren() []Operator {
	return nil
}

func (s *SeqScan) SetChildren(children []Operator) error {
	if len(children) != 0 {
		return fmt.Errorf("seqscan: leaf operator takes no children")
	}
	return nil
}

// TableID reports the underlying file's table id.
func (s *SeqScan) TableID() primitives.TableID {
	return s.file.GetID()
}
