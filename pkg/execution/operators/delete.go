package operators

import (
	"fmt"

	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

// Delete drains child, routing each tuple through pool.DeleteTuple, and
// yields a single (count: int) tuple exactly once.
type Delete struct {
	tid   any
	child Operator
	pool  Mutator

	desc    *tuple.TupleDesc
	emitted bool
}

// NewDelete constructs a Delete operator over child.
func NewDelete(tid any, child Operator, pool Mutator) *Delete {
	resultDesc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"count"}, nil)
	return &Delete{tid: tid, child: child, pool: pool, desc: resultDesc}
}

func (op *Delete) Open() error {
	if err := op.child.Open(); err != nil {
		return err
	}
	op.emitted = false
	return nil
}

func (op *Delete) HasNext() (bool, error) {
	return !op.emitted, nil
}

func (op *Delete) Next() (*tuple.Tuple, error) {
	if op.emitted {
		return nil, nil
	}
	op.emitted = true

	count := int32(0)
	for {
		has, err := op.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !has {
			break
		}
		t, err := op.child.Next()
		if err != nil {
			return nil, err
		}
		if err := op.pool.DeleteTuple(op.tid, t); err != nil {
			return nil, err
		}
		count++
	}
	return tuple.NewTuple(op.desc, []types.Field{types.NewInt32Field(count)}), nil
}

func (op *Delete) Rewind() error {
	op.emitted = false
	return op.child.Rewind()
}

func (op *Delete) Close() {
	op.child.Close()
}

func (op *Delete) GetTupleDesc() *tuple.TupleDesc {
	return op.desc
}

func (op *Delete) GetChildren() []Operator {
	return []Operator{op.child}
}

func (op *Delete) SetChildren(children []Operator) error {
	if len(children) != 1 {
		return fmt.Errorf("delete: expected exactly 1 child, got %d", len(children))
	}
	op.child = children[0]
	return nil
}
