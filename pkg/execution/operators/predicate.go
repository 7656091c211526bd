package operators

import (
	"fmt"

	"heapbase/pkg/tuple"
	"heapbase/pkg/types"
)

// Predicate compares one field of a tuple against a fixed operand using a
// single comparison op. Filter evaluates it exactly once per candidate
// tuple via a peek-ahead fetchNext, rather than re-evaluating it on every
// HasNext/Next call.
type Predicate struct {
	Field   int
	Op      types.Predicate
	Operand types.Field
}

// NewPredicate constructs a Predicate comparing field fieldIdx against
// operand with op.
func NewPredicate(fieldIdx int, op types.Predicate, operand types.Field) *Predicate {
	return &Predicate{Field: fieldIdx, Op: op, Operand: operand}
}

// Evaluate applies the predicate to t, returning its single boolean
// result.
func (p *Predicate) Evaluate(t *tuple.Tuple) (bool, error) {
	if p.Field < 0 || p.Field >= t.GetTupleDesc().NumFields() {
		return false, fmt.Errorf("predicate: field index %d out of range", p.Field)
	}
	return t.GetField(p.Field).Compare(p.Op, p.Operand)
}
