package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt32FieldRoundTrip(t *testing.T) {
	f := NewInt32Field(-42)
	var buf bytes.Buffer
	require.NoError(t, f.Serialize(&buf))

	got, err := ParseInt32Field(&buf)
	require.NoError(t, err)
	require.True(t, f.Equals(got))
}

func TestStringFieldRoundTrip(t *testing.T) {
	f := NewStringField("hello", 16)
	var buf bytes.Buffer
	require.NoError(t, f.Serialize(&buf))
	require.Equal(t, 4+16, buf.Len())

	got, err := ParseStringField(&buf, 16)
	require.NoError(t, err)
	require.True(t, f.Equals(got))
}

func TestStringFieldTruncatesOnConstruction(t *testing.T) {
	f := NewStringField("this is way too long", 4)
	require.Equal(t, "this", f.Value)
}

func TestInt32Compare(t *testing.T) {
	a := NewInt32Field(5)
	b := NewInt32Field(10)

	ok, err := a.Compare(LessThan, b)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = a.Compare(GreaterThan, b)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = a.Compare(Equals, NewInt32Field(5))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStringLike(t *testing.T) {
	s := NewStringField("database systems", 32)
	ok, err := s.Compare(Like, NewStringField("systems", 32))
	require.NoError(t, err)
	require.True(t, ok)
}
