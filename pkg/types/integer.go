package types

import (
	"encoding/binary"
	"hash/fnv"
	"io"
	"strconv"

	"heapbase/pkg/primitives"
)

// Int32Field is the module's only integer field type: a 32-bit signed
// integer, serialized big-endian.
type Int32Field struct {
	Value int32
}

func NewInt32Field(value int32) *Int32Field {
	return &Int32Field{Value: value}
}

func (f *Int32Field) Serialize(w io.Writer) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(f.Value)) // #nosec G115
	_, err := w.Write(buf[:])
	return err
}

func (f *Int32Field) Compare(op Predicate, other Field) (bool, error) {
	o, ok := other.(*Int32Field)
	if !ok {
		return false, nil
	}
	return compareInt32(f.Value, o.Value, op), nil
}

func (f *Int32Field) GetType() Type {
	return IntType
}

func (f *Int32Field) String() string {
	return strconv.FormatInt(int64(f.Value), 10)
}

func (f *Int32Field) Equals(other Field) bool {
	o, ok := other.(*Int32Field)
	return ok && f.Value == o.Value
}

func (f *Int32Field) Hash() (primitives.HashCode, error) {
	h := fnv.New32a()
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(f.Value)) // #nosec G115
	_, _ = h.Write(buf[:])
	return primitives.HashCode(h.Sum32()), nil
}

func (f *Int32Field) Length() int {
	return 4
}

func compareInt32(a, b int32, op Predicate) bool {
	switch op {
	case Equals:
		return a == b
	case LessThan:
		return a < b
	case GreaterThan:
		return a > b
	case LessThanOrEqual:
		return a <= b
	case GreaterThanOrEqual:
		return a >= b
	case NotEqual:
		return a != b
	default:
		return false
	}
}
