// Package tuple defines the row and schema types that flow through the
// operator pipeline: TupleDesc (schema), Tuple (row + optional RecordID).
package tuple

import (
	"fmt"

	"heapbase/pkg/dberr"
	"heapbase/pkg/primitives"
	"heapbase/pkg/types"
)

// FieldInfo is one (type, optional name) pair in a TupleDesc.
type FieldInfo struct {
	Type Types
	Name string
}

// Types is an alias kept local so call sites read tuple.Types rather than
// reaching into the types package for every field declaration.
type Types = types.Type

// TupleDesc is an ordered sequence of (type, optional name) pairs. Two
// descs are equal iff their type sequences are equal; names are advisory.
type TupleDesc struct {
	fields []FieldInfo
	// maxStringSizes[i] is the declared max length of field i when its
	// type is StringType; unused otherwise.
	maxStringSizes []int
}

// NewTupleDesc builds a TupleDesc from parallel type/name slices. Names may
// be shorter than types or contain empty strings; maxStringSizes is indexed
// by field position like fieldTypes and supplies the schema-declared max
// length for string columns (entries at non-string positions are ignored).
// A nil slice, a missing entry or a non-positive entry means
// types.StringMaxSize.
func NewTupleDesc(fieldTypes []Types, names []string, maxStringSizes []int) *TupleDesc {
	fields := make([]FieldInfo, len(fieldTypes))
	sizes := make([]int, len(fieldTypes))
	for i, t := range fieldTypes {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		fields[i] = FieldInfo{Type: t, Name: name}

		size := types.StringMaxSize
		if maxStringSizes != nil && i < len(maxStringSizes) && maxStringSizes[i] > 0 {
			size = maxStringSizes[i]
		}
		sizes[i] = size
	}
	return &TupleDesc{fields: fields, maxStringSizes: sizes}
}

// NumFields returns the number of fields in the schema.
func (d *TupleDesc) NumFields() int {
	return len(d.fields)
}

// FieldType returns the type of field i.
func (d *TupleDesc) FieldType(i int) Types {
	return d.fields[i].Type
}

// FieldName returns the advisory name of field i.
func (d *TupleDesc) FieldName(i int) string {
	return d.fields[i].Name
}

// StringMaxSize returns the declared max length of a string field.
func (d *TupleDesc) StringMaxSize(i int) int {
	return d.maxStringSizes[i]
}

// Equals reports whether two descs have identical type sequences. Field
// names and string max sizes are advisory and not compared.
func (d *TupleDesc) Equals(other *TupleDesc) bool {
	if other == nil || len(d.fields) != len(other.fields) {
		return false
	}
	for i, f := range d.fields {
		if f.Type != other.fields[i].Type {
			return false
		}
	}
	return true
}

// TupleSize returns the fixed serialized size of a tuple with this schema,
// in bytes: the sum of each field's serialized length.
func (d *TupleDesc) TupleSize() int {
	size := 0
	for i, f := range d.fields {
		switch f.Type {
		case types.IntType:
			size += 4
		case types.StringType:
			size += 4 + d.maxStringSizes[i]
		}
	}
	return size
}

// FindField locates a field by name, returning its zero-based index as a
// ColumnID. Fails with SchemaMismatch and InvalidColumnID if no field in
// the schema carries that name.
func (d *TupleDesc) FindField(name string) (primitives.ColumnID, error) {
	for i, f := range d.fields {
		if f.Name == name {
			return primitives.ColumnID(i), nil // #nosec G115
		}
	}
	return primitives.InvalidColumnID, dberr.Newf(dberr.SchemaMismatch, "column %q not found", name)
}

func (d *TupleDesc) String() string {
	s := ""
	for i, f := range d.fields {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s(%s)", f.Name, f.Type)
	}
	return s
}
