// Package transaction defines the transaction identifier type the lock
// manager and buffer pool key their state by. Minting transaction
// identifiers for a real scheduler is out of scope for this module;
// NextID below is enough to drive tests and examples.
package transaction

import (
	"strconv"
	"sync/atomic"
)

// ID is an opaque, comparable transaction handle. The lock manager and
// buffer pool treat it as a plain map key; they never inspect its value.
type ID uint64

var counter atomic.Uint64

// NextID mints a fresh transaction identifier, so tests and examples don't
// need their own counter.
func NextID() ID {
	return ID(counter.Add(1))
}

func (id ID) String() string {
	return "txn#" + strconv.FormatUint(uint64(id), 10)
}
