package types

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ParseInt32Field reads a serialized Int32Field from r.
func ParseInt32Field(r io.Reader) (*Int32Field, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("reading int field: %w", err)
	}
	return NewInt32Field(int32(binary.BigEndian.Uint32(buf[:]))), nil // #nosec G115
}

// ParseStringField reads a serialized StringField of the given maxSize
// from r.
func ParseStringField(r io.Reader, maxSize int) (*StringField, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("reading string field length: %w", err)
	}
	length := int(binary.BigEndian.Uint32(lenBuf[:]))
	if length > maxSize {
		return nil, fmt.Errorf("string field length %d exceeds max size %d", length, maxSize)
	}

	payload := make([]byte, maxSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("reading string field payload: %w", err)
	}
	return NewStringField(string(payload[:length]), maxSize), nil
}

// ParseField reads a field of the given type and maxSize (ignored for
// IntType) from r.
func ParseField(r io.Reader, t Type, maxSize int) (Field, error) {
	switch t {
	case IntType:
		return ParseInt32Field(r)
	case StringType:
		return ParseStringField(r, maxSize)
	default:
		return nil, fmt.Errorf("unknown field type %v", t)
	}
}
