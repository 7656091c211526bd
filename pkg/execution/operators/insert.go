package operators

import (
	"fmt"

	"heapbase/pkg/dberr"
	"heapbase/pkg/primitives"
	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

// Mutator is the narrow buffer-pool view Insert and Delete need. The
// concrete *memory.BufferPool satisfies it without either package
// importing the other's types by name.
type Mutator interface {
	InsertTuple(tid any, tableID primitives.TableID, t *tuple.Tuple) error
	DeleteTuple(tid any, t *tuple.Tuple) error
}

// Insert drains child, routing each tuple through pool.InsertTuple, and
// yields a single one-field (count: int) tuple on its first Next call.
// Subsequent calls report end-of-stream.
type Insert struct {
	tid     any
	child   Operator
	tableID primitives.TableID
	pool    Mutator

	desc    *tuple.TupleDesc
	emitted bool
	done    bool
}

// NewInsert constructs an Insert operator. Fails with SchemaMismatch if
// child's desc differs from the target table's desc, checked once at
// construction time rather than per tuple.
func NewInsert(tid any, child Operator, tableID primitives.TableID, tableDesc *tuple.TupleDesc, pool Mutator) (*Insert, error) {
	if !child.GetTupleDesc().Equals(tableDesc) {
		return nil, dberr.Newf(dberr.SchemaMismatch, "insert: child desc does not match table %d's desc", tableID)
	}
	resultDesc := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"count"}, nil)
	return &Insert{tid: tid, child: child, tableID: tableID, pool: pool, desc: resultDesc}, nil
}

func (op *Insert) Open() error {
	if err := op.child.Open(); err != nil {
		return err
	}
	op.emitted = false
	op.done = false
	return nil
}

func (op *Insert) HasNext() (bool, error) {
	return !op.emitted, nil
}

func (op *Insert) Next() (*tuple.Tuple, error) {
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
		if err := op.pool.InsertTuple(op.tid, op.tableID, t); err != nil {
			return nil, err
		}
		count++
	}
	return tuple.NewTuple(op.desc, []types.Field{types.NewInt32Field(count)}), nil
}

func (op *Insert) Rewind() error {
	op.emitted = false
	return op.child.Rewind()
}

func (op *Insert) Close() {
	op.child.Close()
}

func (op *Insert) GetTupleDesc() *tuple.TupleDesc {
	return op.desc
}

func (op *Insert) GetChildren() []Operator {
	return []Operator{op.child}
}

func (op *Insert) SetChildren(children []Operator) error {
	if len(children) != 1 {
		return fmt.Errorf("insert: expected exactly 1 child, got %d", len(children))
	}
	op.child = children[0]
	return nil
}
