// Package catalog provides the table directory the buffer pool and
// operators consume to resolve a table-id to its file and schema. The
// catalog is treated as an injected external collaborator; this package
// supplies one minimal in-memory implementation so the rest of the module
// is runnable and testable without a real catalog service.
package catalog

import (
	"fmt"
	"sync"

	"heapbase/pkg/primitives"
	"heapbase/pkg/storage/page"
	"heapbase/pkg/tuple"
)

// Catalog is the external interface this module consumes:
// table-id -> file + schema + name, and an enumeration of known tables.
type Catalog interface {
	GetDatabaseFile(tableID primitives.TableID) (page.DbFile, error)
	GetTupleDesc(tableID primitives.TableID) (*tuple.TupleDesc, error)
	GetTableName(tableID primitives.TableID) (string, error)
	TableIDs() []primitives.TableID
}

type entry struct {
	file page.DbFile
	name string
}

// InMemory is a process-local Catalog backed by a map, good enough to
// exercise the buffer pool, operators and statistics layer in tests.
type InMemory struct {
	mu      sync.RWMutex
	tables  map[primitives.TableID]entry
	byName  map[string]primitives.TableID
}

// NewInMemory constructs an empty catalog.
func NewInMemory() *InMemory {
	return &InMemory{
		tables: make(map[primitives.TableID]entry),
		byName: make(map[string]primitives.TableID),
	}
}

// AddTable registers file under name, indexed by file.GetID().
func (c *InMemory) AddTable(file page.DbFile, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[file.GetID()] = entry{file: file, name: name}
	c.byName[name] = file.GetID()
}

func (c *InMemory) GetDatabaseFile(tableID primitives.TableID) (page.DbFile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.tables[tableID]
	if !ok {
		return nil, fmt.Errorf("catalog: no table with id %d", tableID)
	}
	return e.file, nil
}

func (c *InMemory) GetTupleDesc(tableID primitives.TableID) (*tuple.TupleDesc, error) {
	f, err := c.GetDatabaseFile(tableID)
	if err != nil {
		return nil, err
	}
	return f.GetTupleDesc(), nil
}

func (c *InMemory) GetTableName(tableID primitives.TableID) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.tables[tableID]
	if !ok {
		return "", fmt.Errorf("catalog: no table with id %d", tableID)
	}
	return e.name, nil
}

// TableIDByName resolves a table's id from its registered name.
func (c *InMemory) TableIDByName(name string) (primitives.TableID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byName[name]
	if !ok {
		return primitives.InvalidTableID, fmt.Errorf("catalog: no table named %q", name)
	}
	return id, nil
}

func (c *InMemory) TableIDs() []primitives.TableID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]primitives.TableID, 0, len(c.tables))
	for id := range c.tables {
		ids = append(ids, id)
	}
	return ids
}
