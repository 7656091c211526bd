// Package memory implements the buffer pool: a bounded page cache with
// locking, eviction, and insert/delete/commit/abort routing.
package memory

import (
	"container/list"
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sasha-s/go-deadlock"

	"heapbase/pkg/catalog"
	"heapbase/pkg/concurrency/lock"
	"heapbase/pkg/dberr"
	"heapbase/pkg/logging"
	"heapbase/pkg/primitives"
	"heapbase/pkg/storage/page"
	"heapbase/pkg/tuple"
)

// BufferPool is a bounded cache of at most capacity pages, keyed by page
// id. It is the only place that talks to the lock manager and the only
// place that decides when a page gets written back to disk.
type BufferPool struct {
	mu       deadlock.Mutex
	catalog  catalog.Catalog
	locks    *lock.Manager
	log      *logging.Logger
	capacity int

	cache map[page.Key]page.Page
	lru   *list.List               // front = most recently used
	elems map[page.Key]*list.Element

	// dirtiedBy[tid] is the set of pages tid has dirtied since its last
	// commit/abort, needed so transactionComplete can flush (commit) or
	// discard (abort) exactly the right pages.
	dirtiedBy map[any]mapset.Set[page.Key]

	// AcquireTimeout bounds how long GetPage waits on the lock manager
	// before aborting the caller with TransactionAborted. Zero means
	// block indefinitely, the base protocol's default.
	AcquireTimeout time.Duration
}

// NewBufferPool constructs a buffer pool of the given capacity (in pages),
// backed by cat for resolving table-ids to files.
func NewBufferPool(cat catalog.Catalog, capacity int, log *logging.Logger) *BufferPool {
	if log == nil {
		log = logging.Nop()
	}
	return &BufferPool{
		catalog:   cat,
		locks:     lock.NewManager(log),
		log:       log.WithComponent("bufferpool"),
		capacity:  capacity,
		cache:     make(map[page.Key]page.Page),
		lru:       list.New(),
		elems:     make(map[page.Key]*list.Element),
		dirtiedBy: make(map[any]mapset.Set[page.Key]),
	}
}

func permToMode(perm page.Permission) lock.Mode {
	if perm == page.ReadWrite {
		return lock.Exclusive
	}
	return lock.Shared
}

// GetPage acquires the appropriate lock, blocking per the lock manager's
// policy, then returns the cached page, loading and caching it on a miss.
func (bp *BufferPool) GetPage(tid any, pid page.PageID, perm page.Permission) (page.Page, error) {
	if err := bp.locks.Acquire(tid, pid, permToMode(perm), bp.AcquireTimeout); err != nil {
		return nil, err
	}

	bp.mu.Lock()
	defer bp.mu.Unlock()

	key := page.KeyOf(pid)
	if p, ok := bp.cache[key]; ok {
		bp.touch(key)
		return p, nil
	}

	file, err := bp.catalog.GetDatabaseFile(pid.GetTableID())
	if err != nil {
		return nil, fmt.Errorf("resolving table %d: %w", pid.GetTableID(), err)
	}
	p, err := file.ReadPage(pid)
	if err != nil {
		return nil, err
	}
	p.SetBeforeImage()

	if err := bp.makeRoomLocked(); err != nil {
		return nil, err
	}
	bp.insertLocked(key, p)
	return p, nil
}

// touch moves key to the front of the LRU list. Caller holds bp.mu.
func (bp *BufferPool) touch(key page.Key) {
	if e, ok := bp.elems[key]; ok {
		bp.lru.MoveToFront(e)
	}
}

func (bp *BufferPool) insertLocked(key page.Key, p page.Page) {
	bp.cache[key] = p
	if e, ok := bp.elems[key]; ok {
		bp.lru.MoveToFront(e)
		return
	}
	bp.elems[key] = bp.lru.PushFront(key)
}

func (bp *BufferPool) removeLocked(key page.Key) {
	if e, ok := bp.elems[key]; ok {
		bp.lru.Remove(e)
		delete(bp.elems, key)
	}
	delete(bp.cache, key)
}

// makeRoomLocked evicts one page if the cache is at capacity. Caller holds
// bp.mu.
func (bp *BufferPool) makeRoomLocked() error {
	if len(bp.cache) < bp.capacity {
		return nil
	}
	return bp.evictOneLocked()
}

// evictOneLocked implements a STEAL eviction policy: any resident page may
// be evicted; if dirty, its image is flushed to disk first. The
// least-recently-used page is chosen among residents, for a predictable,
// testable eviction order.
func (bp *BufferPool) evictOneLocked() error {
	e := bp.lru.Back()
	if e == nil {
		return fmt.Errorf("bufferpool: nothing to evict")
	}
	key := e.Value.(page.Key)
	p := bp.cache[key]

	if dirty, _ := p.IsDirty(); dirty {
		if err := bp.flushLocked(key, p); err != nil {
			return fmt.Errorf("flushing page %s during eviction: %w", p.GetID(), err)
		}
	}
	bp.removeLocked(key)
	bp.log.WithPage(p.GetID()).Debug("evicted page")
	return nil
}

func (bp *BufferPool) flushLocked(key page.Key, p page.Page) error {
	file, err := bp.catalog.GetDatabaseFile(p.GetID().GetTableID())
	if err != nil {
		return err
	}
	if err := file.WritePage(p); err != nil {
		return err
	}
	if data, err := p.GetPageData(); err == nil {
		bp.log.WithPage(p.GetID()).WithBytes(len(data)).Debug("flushed page")
	}
	p.MarkDirty(false, nil)
	p.SetBeforeImage()
	return nil
}

func (bp *BufferPool) markDirty(tid any, p page.Page) {
	p.MarkDirty(true, tid)
	set, ok := bp.dirtiedBy[tid]
	if !ok {
		set = mapset.NewThreadUnsafeSet[page.Key]()
		bp.dirtiedBy[tid] = set
	}
	set.Add(page.KeyOf(p.GetID()))
}

// reinstate puts p back in the cache under its own id, evicting first if
// necessary and p is not already resident.
func (bp *BufferPool) reinstate(p page.Page) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	key := page.KeyOf(p.GetID())
	if _, resident := bp.cache[key]; !resident {
		if err := bp.makeRoomLocked(); err != nil {
			return err
		}
	}
	bp.insertLocked(key, p)
	bp.touch(key)
	return nil
}

// InsertTuple delegates to tableID's HeapFile, then marks every page it
// modified dirty under tid and reinstates it in cache.
func (bp *BufferPool) InsertTuple(tid any, tableID primitives.TableID, t *tuple.Tuple) error {
	file, err := bp.catalog.GetDatabaseFile(tableID)
	if err != nil {
		return fmt.Errorf("resolving table %d: %w", tableID, err)
	}
	pages, err := file.InsertTuple(tid, t)
	if err != nil {
		return err
	}
	return bp.dirtyAndReinstate(tid, pages)
}

// DeleteTuple delegates to the HeapFile owning t's current page.
func (bp *BufferPool) DeleteTuple(tid any, t *tuple.Tuple) error {
	rid := t.GetRecordID()
	if rid == nil {
		return dberr.New(dberr.TupleNotOnPage, "tuple has no record id")
	}
	pid, ok := rid.PageID.(page.PageID)
	if !ok {
		return dberr.New(dberr.TupleNotOnPage, "tuple's record id has no valid page id")
	}
	file, err := bp.catalog.GetDatabaseFile(pid.GetTableID())
	if err != nil {
		return fmt.Errorf("resolving table %d: %w", pid.GetTableID(), err)
	}
	pages, err := file.DeleteTuple(tid, t)
	if err != nil {
		return err
	}
	return bp.dirtyAndReinstate(tid, pages)
}

func (bp *BufferPool) dirtyAndReinstate(tid any, pages []page.Page) error {
	for _, p := range pages {
		bp.mu.Lock()
		bp.markDirty(tid, p)
		bp.mu.Unlock()
		if err := bp.reinstate(p); err != nil {
			return err
		}
	}
	return nil
}

// FlushPage writes p to disk and clears its dirty flag if it is resident
// and dirty. Keeps it in cache.
func (bp *BufferPool) FlushPage(pid page.PageID) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	key := page.KeyOf(pid)
	p, ok := bp.cache[key]
	if !ok {
		return nil
	}
	if dirty, _ := p.IsDirty(); !dirty {
		return nil
	}
	return bp.flushLocked(key, p)
}

// FlushAllPages flushes every resident dirty page.
func (bp *BufferPool) FlushAllPages() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	for key, p := range bp.cache {
		if dirty, _ := p.IsDirty(); dirty {
			if err := bp.flushLocked(key, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// DiscardPage removes pid from cache without flushing.
func (bp *BufferPool) DiscardPage(pid page.PageID) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.removeLocked(page.KeyOf(pid))
}

// ReleasePage is an explicit early release: dangerous, caller's
// responsibility.
func (bp *BufferPool) ReleasePage(tid any, pid page.PageID) {
	bp.locks.Release(tid, pid)
}

// TransactionComplete commits or aborts tid: on commit, flushes every page
// it dirtied, then releases all its locks; on abort, discards every page
// it dirtied (forcing a re-read from disk) then releases all its locks.
func (bp *BufferPool) TransactionComplete(tid any, commit bool) error {
	bp.mu.Lock()
	dirtied := bp.dirtiedBy[tid]
	delete(bp.dirtiedBy, tid)
	bp.mu.Unlock()

	if dirtied != nil {
		for key := range dirtied.Iter() {
			if commit {
				bp.mu.Lock()
				p, ok := bp.cache[key]
				if ok {
					err := bp.flushLocked(key, p)
					bp.mu.Unlock()
					if err != nil {
						return fmt.Errorf("flushing page during commit: %w", err)
					}
				} else {
					bp.mu.Unlock()
				}
			} else {
				bp.mu.Lock()
				bp.removeLocked(key)
				bp.mu.Unlock()
			}
		}
	}

	bp.locks.ReleaseAll(tid)
	return nil
}
