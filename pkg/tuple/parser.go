package tuple

import (
	"fmt"
	"io"

	"heapbase/pkg/types"
)

// ParseTuple reads a fixed-size tuple slot from r according to desc.
func ParseTuple(r io.Reader, desc *TupleDesc) (*Tuple, error) {
	values := make([]types.Field, desc.NumFields())
	for i := 0; i < desc.NumFields(); i++ {
		maxSize := 0
		if desc.FieldType(i) == types.StringType {
			maxSize = desc.StringMaxSize(i)
		}
		f, err := types.ParseField(r, desc.FieldType(i), maxSize)
		if err != nil {
			return nil, fmt.Errorf("parsing field %d: %w", i, err)
		}
		values[i] = f
	}
	return NewTuple(desc, values), nil
}
