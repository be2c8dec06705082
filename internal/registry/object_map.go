package registry

import "iter"

type entry[K any, V any] struct {
	key   K
	value V
}

// ObjectMap maps keys to values through a canonical id derived from the key.
// Not safe for concurrent use.
type ObjectMap[K any, V any] struct {
	idOf    func(K) string
	entries map[string]entry[K, V]
}

// New creates an empty ObjectMap using idOf to derive canonical ids.
func New[K any, V any](idOf func(K) string) *ObjectMap[K, V] {
	return &ObjectMap[K, V]{
		idOf:    idOf,
		entries: make(map[string]entry[K, V]),
	}
}

// Put inserts or overwrites the value for key.
// On overwrite the stored key is replaced by key as well.
func (m *ObjectMap[K, V]) Put(key K, value V) {
	m.entries[m.idOf(key)] = entry[K, V]{key: key, value: value}
}

// Get returns the value stored for key.
func (m *ObjectMap[K, V]) Get(key K) (V, bool) {
	e, ok := m.entries[m.idOf(key)]
	return e.value, ok
}

// Has reports whether key is present.
func (m *ObjectMap[K, V]) Has(key K) bool {
	_, ok := m.entries[m.idOf(key)]
	return ok
}

// Delete removes key and reports whether it was present.
func (m *ObjectMap[K, V]) Delete(key K) bool {
	id := m.idOf(key)
	if _, ok := m.entries[id]; !ok {
		return false
	}
	delete(m.entries, id)
	return true
}

// ForEach calls fn for every entry in unspecified order until fn returns false.
func (m *ObjectMap[K, V]) ForEach(fn func(key K, value V) bool) {
	for _, e := range m.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}

// All iterates every entry in unspecified order.
func (m *ObjectMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.ForEach(yield)
	}
}

// Len returns the number of entries.
func (m *ObjectMap[K, V]) Len() int {
	return len(m.entries)
}
