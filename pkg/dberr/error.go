// Package dberr defines the structured error kinds raised by the storage
// and execution layers. Failures of the kinds below are constructed here,
// so callers can branch on Kind rather than string-matching error text;
// other failures (file I/O, catalog lookups) are returned as plain wrapped
// errors, for which KindOf reports Unknown.
package dberr

import (
	"errors"
	"fmt"
	"runtime"
)

// Kind classifies why an operation failed. It is the stable, switchable
// part of a DBError; the message and wrapped cause carry the detail.
type Kind int

const (
	// Unknown is the zero value; never raised deliberately.
	Unknown Kind = iota

	// InvalidPage is raised reading past file length or on a short read.
	InvalidPage

	// CorruptPage is raised when page bytes are ill-formed.
	CorruptPage

	// PageFull is raised when a page has no empty slot for an insertion.
	PageFull

	// TupleNotOnPage is raised when a delete target is absent.
	TupleNotOnPage

	// SchemaMismatch is raised when an Insert child's desc differs from
	// the target table's desc. Construction-time, fatal.
	SchemaMismatch

	// TypeMismatch is raised when an aggregator sees a field of the wrong
	// type for its declared group-by type.
	TypeMismatch

	// UnsupportedOp is raised for operations like AVG/SUM over a string
	// field. Construction-time, fatal.
	UnsupportedOp

	// TransactionAborted is raised when a lock acquisition times out.
	TransactionAborted
)

func (k Kind) String() string {
	switch k {
	case InvalidPage:
		return "InvalidPage"
	case CorruptPage:
		return "CorruptPage"
	case PageFull:
		return "PageFull"
	case TupleNotOnPage:
		return "TupleNotOnPage"
	case SchemaMismatch:
		return "SchemaMismatch"
	case TypeMismatch:
		return "TypeMismatch"
	case UnsupportedOp:
		return "UnsupportedOp"
	case TransactionAborted:
		return "TransactionAborted"
	default:
		return "Unknown"
	}
}

// DBError is the concrete error type this module returns. It carries a
// Kind for control flow, a human-readable message, an optional wrapped
// cause, and the call site that constructed it for debug logging.
type DBError struct {
	Kind    Kind
	Message string
	Cause   error
	frame   runtime.Frame
}

func (e *DBError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DBError) Unwrap() error {
	return e.Cause
}

// Site returns the file:line that constructed this error, for logging.
func (e *DBError) Site() string {
	return fmt.Sprintf("%s:%d", e.frame.File, e.frame.Line)
}

func captureFrame() runtime.Frame {
	pc := make([]uintptr, 1)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return runtime.Frame{}
	}
	frame, _ := runtime.CallersFrames(pc).Next()
	return frame
}

// New constructs a DBError of the given kind with no wrapped cause.
func New(kind Kind, message string) *DBError {
	return &DBError{Kind: kind, Message: message, frame: captureFrame()}
}

// Newf constructs a DBError of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *DBError {
	return &DBError{Kind: kind, Message: fmt.Sprintf(format, args...), frame: captureFrame()}
}

// Wrap constructs a DBError of the given kind that wraps cause.
func Wrap(kind Kind, cause error, message string) *DBError {
	return &DBError{Kind: kind, Message: message, Cause: cause, frame: captureFrame()}
}

// KindOf extracts the Kind of err if it is (or wraps) a *DBError, and
// Unknown otherwise, for callers that branch on kind.
func KindOf(err error) Kind {
	var dberr *DBError
	if errors.As(err, &dberr) {
		return dberr.Kind
	}
	return Unknown
}

// Is reports whether err is a DBError of the given kind. Satisfies the
// errors.Is contract via the target's Kind, so errors.Is(err, dberr.New(dberr.PageFull, "")) works.
func (e *DBError) Is(target error) bool {
	var other *DBError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}
