package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/querycache/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Universe returns n distinct document keys in collection.
func Universe(collection string, n int) []model.DocumentKey {
	keys := make([]model.DocumentKey, n)
	for i := range n {
		keys[i] = model.MustDocumentKey(fmt.Sprintf("%s/d%04d", collection, i))
	}
	return keys
}

// KeySet picks up to maxSize random keys from universe.
func (r *RNG) KeySet(universe []model.DocumentKey, maxSize int) model.DocumentKeySet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keySet(universe, maxSize)
}

func (r *RNG) keySet(universe []model.DocumentKey, maxSize int) model.DocumentKeySet {
	if len(universe) == 0 || maxSize <= 0 {
		return model.DocumentKeySet{}
	}
	n := r.rand.Intn(maxSize + 1)
	keys := make([]model.DocumentKey, n)
	for i := range keys {
		keys[i] = universe[r.rand.Intn(len(universe))]
	}
	return model.NewDocumentKeySet(keys...)
}

// TargetChange generates a change for a target that currently matches current.
//
// Added keys are drawn from universe minus current, Modified and Removed from
// current, so the three sets are disjoint. Each set has at most maxPerSet keys.
func (r *RNG) TargetChange(universe []model.DocumentKey, current model.DocumentKeySet, maxPerSet int, version model.SnapshotVersion) model.TargetChange {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := r.keySet(universe, maxPerSet).Difference(current)

	members := current.Slice()
	removed := r.keySet(members, maxPerSet)
	modified := r.keySet(members, maxPerSet).Difference(removed)

	return model.TargetChange{
		Added:           added,
		Modified:        modified,
		Removed:         removed,
		SnapshotVersion: version,
	}
}

// RecordingCollector records every garbage notification.
// It is safe for concurrent use.
type RecordingCollector struct {
	mu    sync.Mutex
	calls []model.DocumentKey
}

// NewRecordingCollector creates an empty RecordingCollector.
func NewRecordingCollector() *RecordingCollector {
	return &RecordingCollector{}
}

// AddPotentialGarbageKey implements gc.Collector.
func (c *RecordingCollector) AddPotentialGarbageKey(key model.DocumentKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, key)
}

// Calls returns every notified key in notification order.
func (c *RecordingCollector) Calls() []model.DocumentKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.DocumentKey, len(c.calls))
	copy(out, c.calls)
	return out
}

// Count returns how often key was notified.
func (c *RecordingCollector) Count(key model.DocumentKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, k := range c.calls {
		if k == key {
			n++
		}
	}
	return n
}

// Reset forgets all recorded notifications.
func (c *RecordingCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}
