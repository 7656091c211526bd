package tuple

import (
	"fmt"
	"io"

	"heapbase/pkg/types"
)

// Tuple is a TupleDesc plus a values array of equal length. It optionally
// carries a RecordID once it has been stored on a page.
type Tuple struct {
	desc     *TupleDesc
	values   []types.Field
	recordID *RecordID
}

// NewTuple constructs a Tuple for desc with the given field values. Panics
// if the value count or any value's type disagrees with desc — this is a
// programmer error at every call site (operators build tuples from a known
// schema), not a runtime condition to recover from.
func NewTuple(desc *TupleDesc, values []types.Field) *Tuple {
	if len(values) != desc.NumFields() {
		panic(fmt.Sprintf("tuple: expected %d fields, got %d", desc.NumFields(), len(values)))
	}
	for i, v := range values {
		if v.GetType() != desc.FieldType(i) {
			panic(fmt.Sprintf("tuple: field %d type %v does not match schema type %v", i, v.GetType(), desc.FieldType(i)))
		}
	}
	return &Tuple{desc: desc, values: values}
}

// GetTupleDesc returns the tuple's schema.
func (t *Tuple) GetTupleDesc() *TupleDesc {
	return t.desc
}

// GetField returns the value of field i.
func (t *Tuple) GetField(i int) types.Field {
	return t.values[i]
}

// SetField overwrites the value of field i.
func (t *Tuple) SetField(i int, v types.Field) {
	t.values[i] = v
}

// GetRecordID returns the tuple's RecordID, or nil if it has not been
// stored.
func (t *Tuple) GetRecordID() *RecordID {
	return t.recordID
}

// SetRecordID sets the tuple's RecordID. Called by HeapPage.InsertTuple and
// when a HeapPage is deserialized, not by operator code.
func (t *Tuple) SetRecordID(rid RecordID) {
	t.recordID = &rid
}

// Equals reports whether two tuples have equal schemas and equal field
// values in order. RecordID is not compared — it is identity metadata, not
// value content.
func (t *Tuple) Equals(other *Tuple) bool {
	if other == nil || !t.desc.Equals(other.desc) || len(t.values) != len(other.values) {
		return false
	}
	for i, v := range t.values {
		if !v.Equals(other.values[i]) {
			return false
		}
	}
	return true
}

// Serialize writes the tuple's fixed-size on-disk representation to w, in
// field order, with no separators: slot bytes are exactly desc.TupleSize().
func (t *Tuple) Serialize(w io.Writer) error {
	for _, v := range t.values {
		if err := v.Serialize(w); err != nil {
			return fmt.Errorf("serializing field: %w", err)
		}
	}
	return nil
}

func (t *Tuple) String() string {
	s := ""
	for i, v := range t.values {
		if i > 0 {
			s += "\t"
		}
		s += v.String()
	}
	return s
}
