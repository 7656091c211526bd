// Package lock implements page-level Shared/Exclusive locking with
// same-holder upgrade and blocking (not poll-sleep) acquisition, per the
// two-phase-locking-style protocol the buffer pool enforces.
package lock

// Mode is a lock mode: Shared (reader) or Exclusive (writer).
type Mode int

const (
	Shared Mode = iota
	Exclusive
)

func (m Mode) String() string {
	if m == Exclusive {
		return "X"
	}
	return "S"
}

// holder is one (transaction, mode) entry in a page's holder list.
type holder struct {
	tid  any
	mode Mode
}
