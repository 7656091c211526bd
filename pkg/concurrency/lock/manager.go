package lock

import (
	"sync"
	"time"

	"github.com/sasha-s/go-deadlock"

	"heapbase/pkg/dberr"
	"heapbase/pkg/logging"
	"heapbase/pkg/primitives"
	"heapbase/pkg/storage/page"
)

type pageLockState struct {
	holders []holder
	cond    *sync.Cond
}

// Manager is the page-level lock table. A single mutex guards the whole
// table; each page's condition variable shares that mutex so broadcasting
// on release costs no extra synchronization.
//
// go-deadlock replaces sync.Mutex here purely to catch accidental deadlocks
// in this implementation's own internal locking during development — it
// has nothing to do with the page-lock wait graph between transactions,
// which this manager deliberately does not track.
type Manager struct {
	mu      deadlock.Mutex
	pages   map[page.Key]*pageLockState
	log     *logging.Logger
	nextReq primitives.LockID
}

// NewManager constructs an empty lock manager.
func NewManager(log *logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		pages: make(map[page.Key]*pageLockState),
		log:   log.WithComponent("lockmanager"),
	}
}

// nextRequestID returns a LockID identifying one Acquire call, so its
// eventual grant or timeout can be matched back to the log line that
// recorded it waiting. Callers hold m.mu.
func (m *Manager) nextRequestID() primitives.LockID {
	m.nextReq++
	return m.nextReq
}

func (m *Manager) stateFor(key page.Key) *pageLockState {
	st, ok := m.pages[key]
	if !ok {
		st = &pageLockState{}
		st.cond = sync.NewCond(&m.mu)
		m.pages[key] = st
	}
	return st
}

// evaluate applies the acquire rules against st's current holder list.
// Returns true and the state's holder list already mutated if granted.
func evaluate(st *pageLockState, tid any, mode Mode) bool {
	if len(st.holders) == 0 {
		st.holders = append(st.holders, holder{tid: tid, mode: mode})
		return true
	}

	for i, h := range st.holders {
		if h.tid != tid {
			continue
		}
		switch {
		case h.mode == mode:
			return true
		case h.mode == Exclusive && mode == Shared:
			return true
		case h.mode == Shared && mode == Exclusive:
			if len(st.holders) == 1 {
				st.holders[i].mode = Exclusive
				return true
			}
			return false
		}
		return false
	}

	if mode == Shared {
		for _, h := range st.holders {
			if h.mode != Shared {
				return false
			}
		}
		st.holders = append(st.holders, holder{tid: tid, mode: mode})
		return true
	}
	return false
}

// Acquire blocks until pid can be locked by tid in mode. If timeout is
// positive and the wait exceeds it, returns a TransactionAborted DBError
// instead of granting — the recommended deadlock policy; a
// non-positive timeout blocks indefinitely, as the base protocol requires.
func (m *Manager) Acquire(tid any, pid page.PageID, mode Mode, timeout time.Duration) error {
	key := page.KeyOf(pid)

	m.mu.Lock()
	st := m.stateFor(key)
	reqID := m.nextRequestID()

	var deadline time.Time
	var timer *time.Timer
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
		timer = time.AfterFunc(timeout, func() {
			m.mu.Lock()
			st.cond.Broadcast()
			m.mu.Unlock()
		})
		defer timer.Stop()
	}

	logged := false
	for {
		// Re-fetch the page state on every pass: Release drops the entry
		// when its holder list empties, so the state waited on may no
		// longer be the one in the table.
		st = m.stateFor(key)
		if evaluate(st, tid, mode) {
			m.mu.Unlock()
			m.log.WithTxn(tid).WithPage(pid).WithLock(mode).WithRequest(reqID).Debug("lock granted")
			return nil
		}
		if timeout > 0 && !time.Now().Before(deadline) {
			m.mu.Unlock()
			m.log.WithTxn(tid).WithPage(pid).WithLock(mode).WithRequest(reqID).Debug("lock acquire timed out")
			return dberr.Newf(dberr.TransactionAborted, "lock acquire timed out for %v on %s", tid, pid)
		}
		if !logged {
			m.log.WithTxn(tid).WithPage(pid).WithLock(mode).WithRequest(reqID).Debug("lock blocked, waiting")
			logged = true
		}
		st.cond.Wait()
	}
}

// Release removes tid's holder entry for pid, if present, and notifies
// waiters. No-op if tid does not hold pid.
func (m *Manager) Release(tid any, pid page.PageID) {
	key := page.KeyOf(pid)

	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.pages[key]
	if !ok {
		return
	}
	for i, h := range st.holders {
		if h.tid == tid {
			st.holders = append(st.holders[:i], st.holders[i+1:]...)
			break
		}
	}
	if len(st.holders) == 0 {
		delete(m.pages, key)
	}
	st.cond.Broadcast()
	m.log.WithTxn(tid).WithPage(pid).Debug("lock released")
}

// ReleaseAll releases every page tid holds.
func (m *Manager) ReleaseAll(tid any) {
	m.mu.Lock()
	var held []page.Key
	for key, st := range m.pages {
		for _, h := range st.holders {
			if h.tid == tid {
				held = append(held, key)
				break
			}
		}
	}
	m.mu.Unlock()

	for _, key := range held {
		m.releaseKey(tid, key)
	}
}

func (m *Manager) releaseKey(tid any, key page.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.pages[key]
	if !ok {
		return
	}
	for i, h := range st.holders {
		if h.tid == tid {
			st.holders = append(st.holders[:i], st.holders[i+1:]...)
			break
		}
	}
	if len(st.holders) == 0 {
		delete(m.pages, key)
	}
	st.cond.Broadcast()
}

// Holds reports whether tid currently holds any lock on pid.
func (m *Manager) Holds(tid any, pid page.PageID) bool {
	key := page.KeyOf(pid)

	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.pages[key]
	if !ok {
		return false
	}
	for _, h := range st.holders {
		if h.tid == tid {
			return true
		}
	}
	return false
}
