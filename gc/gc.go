// Package gc defines the boundary between the query cache and the
// host's garbage collector.
//
// The cache only reports documents whose last reference disappeared. Deciding
// whether and when to evict them belongs to the collector.
package gc

import (
	"sync"

	"github.com/hupe1980/querycache/model"
)

// Collector receives documents that may no longer be referenced.
type Collector interface {
	// AddPotentialGarbageKey is called when key lost its last reference.
	AddPotentialGarbageKey(key model.DocumentKey)
}

// Source is a component that holds references a Collector must consult
// before evicting a document.
type Source interface {
	// SetGarbageCollector installs c. A nil c disables notifications.
	SetGarbageCollector(c Collector)

	// ContainsKey reports whether key is still referenced.
	ContainsKey(txn model.Transaction, key model.DocumentKey) bool
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc func(key model.DocumentKey)

// AddPotentialGarbageKey implements Collector.
func (f CollectorFunc) AddPotentialGarbageKey(key model.DocumentKey) { f(key) }

// CandidateSet is a Collector that accumulates candidates until drained.
// It is safe for concurrent use.
type CandidateSet struct {
	mu   sync.Mutex
	keys map[model.DocumentKey]struct{}
}

// NewCandidateSet creates an empty CandidateSet.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{keys: make(map[model.DocumentKey]struct{})}
}

// AddPotentialGarbageKey implements Collector.
func (c *CandidateSet) AddPotentialGarbageKey(key model.DocumentKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys[key] = struct{}{}
}

// Len returns the number of pending candidates.
func (c *CandidateSet) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.keys)
}

// Drain returns all pending candidates and resets the set.
func (c *CandidateSet) Drain() model.DocumentKeySet {
	c.mu.Lock()
	pending := c.keys
	c.keys = make(map[model.DocumentKey]struct{})
	c.mu.Unlock()

	keys := make([]model.DocumentKey, 0, len(pending))
	for k := range pending {
		keys = append(keys, k)
	}
	return model.NewDocumentKeySet(keys...)
}
