package types

import (
	"encoding/binary"
	"hash/fnv"
	"io"
	"strings"

	"heapbase/pkg/primitives"
)

// StringField is a fixed-max-length string: a length prefix followed by
// padding to MaxSize, so every StringField of the same MaxSize serializes
// to the same number of bytes regardless of the actual string length.
type StringField struct {
	Value   string
	MaxSize int
}

// NewStringField creates a StringField, truncating value if it exceeds
// maxSize.
func NewStringField(value string, maxSize int) *StringField {
	if len(value) > maxSize {
		value = value[:maxSize]
	}
	return &StringField{Value: value, MaxSize: maxSize}
}

func (s *StringField) Compare(op Predicate, other Field) (bool, error) {
	o, ok := other.(*StringField)
	if !ok {
		return false, nil
	}
	cmp := strings.Compare(s.Value, o.Value)
	switch op {
	case Equals:
		return cmp == 0, nil
	case LessThan:
		return cmp < 0, nil
	case GreaterThan:
		return cmp > 0, nil
	case LessThanOrEqual:
		return cmp <= 0, nil
	case GreaterThanOrEqual:
		return cmp >= 0, nil
	case NotEqual:
		return cmp != 0, nil
	case Like:
		return strings.Contains(s.Value, o.Value), nil
	default:
		return false, nil
	}
}

// Serialize writes: 4-byte big-endian length, then the string bytes, then
// zero padding out to MaxSize.
func (s *StringField) Serialize(w io.Writer) error {
	length := min(len(s.Value), s.MaxSize)

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(length)) // #nosec G115
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte(s.Value[:length])); err != nil {
		return err
	}
	padding := make([]byte, s.MaxSize-length)
	_, err := w.Write(padding)
	return err
}

func (s *StringField) GetType() Type {
	return StringType
}

func (s *StringField) String() string {
	return s.Value
}

func (s *StringField) Equals(other Field) bool {
	o, ok := other.(*StringField)
	return ok && s.Value == o.Value && s.MaxSize == o.MaxSize
}

func (s *StringField) Hash() (primitives.HashCode, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s.Value))
	return primitives.HashCode(h.Sum32()), nil
}

func (s *StringField) Length() int {
	return 4 + s.MaxSize
}
