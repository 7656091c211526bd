package operators

import (
	"fmt"

	"heapbase/pkg/tuple"
)

// Filter yields child tuples for which predicate evaluates true. Output
// desc equals the child's. Open is idempotent: calling it on an
// already-closed Filter re-initializes the scan.
type Filter struct {
	predicate *Predicate
	child     Operator

	havePeek bool
	peeked   *tuple.Tuple
}

// NewFilter constructs a Filter over child using predicate.
func NewFilter(predicate *Predicate, child Operator) *Filter {
	return &Filter{predicate: predicate, child: child}
}

func (f *Filter) Open() error {
	if err := f.child.Open(); err != nil {
		return err
	}
	f.havePeek = false
	f.peeked = nil
	return nil
}

func (f *Filter) fetchNext() (*tuple.Tuple, error) {
	for {
		has, err := f.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, nil
		}
		t, err := f.child.Next()
		if err != nil {
			return nil, err
		}
		ok, err := f.predicate.Evaluate(t)
		if err != nil {
			return nil, err
		}
		if ok {
			return t, nil
		}
	}
}

func (f *Filter) HasNext() (bool, error) {
	if f.havePeek {
		return f.peeked != nil, nil
	}
	t, err := f.fetchNext()
	if err != nil {
		return false, err
	}
	f.peeked = t
	f.havePeek = true
	return t != nil, nil
}

func (f *Filter) Next() (*tuple.Tuple, error) {
	if !f.havePeek {
		if _, err := f.HasNext(); err != nil {
			return nil, err
		}
	}
	t := f.peeked
	f.havePeek = false
	f.peeked = nil
	if t == nil {
		return nil, fmt.Errorf("filter: no more tuples")
	}
	return t, nil
}

func (f *Filter) Rewind() error {
	f.havePeek = false
	f.peeked = nil
	return f.child.Rewind()
}

func (f *Filter) Close() {
	f.child.Close()
	f.havePeek = false
	f.peeked = nil
}

func (f *Filter) GetTupleDesc() *tuple.TupleDesc {
	return f.child.GetTupleDesc()
}

func (f *Filter) GetChildren() []Operator {
	return []Operator{f.child}
}

func (f *Filter) SetChildren(children []Operator) error {
	if len(children) != 1 {
		return fmt.Errorf("filter: expected exactly 1 child, got %d", len(children))
	}
	f.child = children[0]
	return nil
}
