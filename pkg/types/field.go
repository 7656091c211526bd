package types

import (
	"io"

	"heapbase/pkg/primitives"
)

// Field is a tagged scalar value: either a 32-bit signed integer or a
// fixed-max-length string. Implementations are comparable by type-specific
// ordering and have a stable serialized form.
type Field interface {
	// Serialize writes the field's on-disk representation to w.
	Serialize(w io.Writer) error

	// Compare applies op between this field and other, which must be of
	// the same concrete type. A type mismatch returns (false, nil): the
	// caller (operators, aggregators) is responsible for type-checking
	// before comparing.
	Compare(op Predicate, other Field) (bool, error)

	// GetType reports the field's scalar type.
	GetType() Type

	String() string

	Equals(other Field) bool

	// Hash returns a stable hash of the field's value.
	Hash() (primitives.HashCode, error)

	// Length reports the serialized size in bytes.
	Length() int
}
