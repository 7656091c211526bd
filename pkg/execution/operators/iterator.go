// Package operators implements the iterator-model relational operators:
// Filter, Insert and Delete. Aggregation lives in the sibling aggregation
// package since its iteration semantics (materialize-then-emit) differ
// enough from these pull-through operators to warrant its own type.
package operators

import "heapbase/pkg/tuple"

// Operator is the pull-iterator capability set every operator in the tree
// implements: open/hasNext/next/rewind/close plus the schema and
// child-operator accessors needed to compose a tree.
type Operator interface {
	Open() error
	HasNext() (bool, error)
	Next() (*tuple.Tuple, error)
	Rewind() error
	Close()
	GetTupleDesc() *tuple.TupleDesc
	GetChildren() []Operator
	SetChildren(children []Operator) error
}
