// Package memory is a process-local document store with the same filter
// semantics as the PostgreSQL backend. It backs development runs and tests.
package memory

import (
	"context"
	"sync"
)

// Database holds every collection as JSON-shaped documents keyed by id.
type Database struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{collections: make(map[string]map[string]map[string]any)}
}

func (d *Database) Ping(_ context.Context) error {
	return nil
}

func (d *Database) Close() error {
	return nil
}

// collection returns the named collection, creating it. Callers hold d.mu for writing.
func (d *Database) collection(name string) map[string]map[string]any {
	c, ok := d.collections[name]
	if !ok {
		c = make(map[string]map[string]any)
		d.collections[name] = c
	}
	return c
}
