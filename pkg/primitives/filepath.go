package primitives

import (
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Filepath is a type-safe wrapper around the on-disk path backing a
// HeapFile. Its surface is deliberately narrow: a HeapFile only ever needs
// to normalize its path and derive a stable TableID from it.
type Filepath string

// Hash derives a TableID from the file path using xxhash. The hash is
// deterministic: the same absolute path always yields the same TableID,
// which is what lets a HeapFile's table identity survive a process restart.
func (f Filepath) Hash() TableID {
	return TableID(xxhash.Sum64String(string(f)))
}

// String converts the Filepath to a standard string.
func (f Filepath) String() string {
	return string(f)
}

// Abs resolves the filepath to an absolute path, so two HeapFiles opened
// from different working directories against the same underlying file
// hash to the same TableID.
func (f Filepath) Abs() (Filepath, error) {
	abs, err := filepath.Abs(string(f))
	if err != nil {
		return "", err
	}
	return Filepath(abs), nil
}
