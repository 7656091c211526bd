package aggregation

import (
	"fmt"

	"heapbase/pkg/execution/operators"
	"heapbase/pkg/tuple"
)

// Aggregate is the iterator-model operator wrapping an Aggregator: it
// drains its child exactly once into the aggregator, then replays the
// aggregator's result rows.
type Aggregate struct {
	child Operator
	agg   Aggregator
	desc  *tuple.TupleDesc

	it *ResultIterator
}

// Operator aliases operators.Operator, the interface Aggregate's single
// child must satisfy.
type Operator = operators.Operator

// NewAggregate constructs an Aggregate operator over child using agg.
func NewAggregate(child Operator, agg Aggregator) *Aggregate {
	return &Aggregate{child: child, agg: agg, desc: agg.Desc()}
}

func (a *Aggregate) Open() error {
	if err := a.child.Open(); err != nil {
		return err
	}
	for {
		has, err := a.child.HasNext()
		if err != nil {
			return err
		}
		if !has {
			break
		}
		t, err := a.child.Next()
		if err != nil {
			return err
		}
		if err := a.agg.Merge(t); err != nil {
			return err
		}
	}
	it, err := a.agg.Iterator()
	if err != nil {
		return err
	}
	a.it = it
	return nil
}

func (a *Aggregate) HasNext() (bool, error) {
	if a.it == nil {
		return false, fmt.Errorf("aggregate: not open")
	}
	return a.it.HasNext(), nil
}

func (a *Aggregate) Next() (*tuple.Tuple, error) {
	if a.it == nil {
		return nil, fmt.Errorf("aggregate: not open")
	}
	if !a.it.HasNext() {
		return nil, fmt.Errorf("aggregate: no more tuples")
	}
	return a.it.Next(), nil
}

func (a *Aggregate) Rewind() error {
	if a.it == nil {
		return fmt.Errorf("aggregate: not open")
	}
	a.it.Rewind()
	return nil
}

func (a *Aggregate) Close() {
	a.child.Close()
	a.it = nil
}

func (a *Aggregate) GetTupleDesc() *tuple.TupleDesc {
	return a.desc
}

func (a *Aggregate) GetChildren() []Operator {
	return []Operator{a.child}
}

func (a *Aggregate) SetChildren(children []Operator) error {
	if len(children) != 1 {
		return fmt.Errorf("aggregate: expected exactly 1 child, got %d", len(children))
	}
	a.child = children[0]
	return nil
}
