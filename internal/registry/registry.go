// Package registry tracks the live tables of a process, keyed by id.
// Each table owns its own state and lock; the registry only guards the
// map, so sessions never contend with each other.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/handcoach/holdem/internal/game"
)

// Registry is a concurrency-safe collection of tables.
type Registry struct {
	logger *log.Logger
	mu     sync.RWMutex
	tables map[string]*game.Table
}

// New constructs an empty registry.
func New(logger *log.Logger) *Registry {
	return &Registry{
		logger: logger.With("component", "registry"),
		tables: make(map[string]*game.Table),
	}
}

// Add registers a table under the given id. Ids are caller-chosen and
// must be unique.
func (r *Registry) Add(id string, t *game.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[id]; ok {
		return fmt.Errorf("registry: table %q already exists", id)
	}
	r.tables[id] = t
	r.logger.Debug("table registered", "id", id, "seats", len(t.Seats()))
	return nil
}

// Get returns the table registered under id.
func (r *Registry) Get(id string) (*game.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[id]
	return t, ok
}

// Remove drops the table and returns it, for a final snapshot.
func (r *Registry) Remove(id string) (*game.Table, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[id]
	if !ok {
		return nil, false
	}
	delete(r.tables, id)
	r.logger.Debug("table removed", "id", id)
	return t, true
}

// IDs lists registered table ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.tables))
	for id := range r.tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}
