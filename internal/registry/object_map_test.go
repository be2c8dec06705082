package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// filterQuery has no natural map key because of the slice.
type filterQuery struct {
	path    string
	filters []string
}

func canonical(q *filterQuery) string {
	return q.path + "|" + strings.Join(q.filters, ",")
}

func TestObjectMap_StructuralIdentity(t *testing.T) {
	m := New[*filterQuery, int](canonical)

	m.Put(&filterQuery{path: "rooms", filters: []string{"a==1"}}, 1)

	// A distinct but structurally equal pointer finds the entry.
	v, ok := m.Get(&filterQuery{path: "rooms", filters: []string{"a==1"}})
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, m.Has(&filterQuery{path: "rooms", filters: []string{"a==1"}}))
	assert.False(t, m.Has(&filterQuery{path: "rooms"}))
	assert.Equal(t, 1, m.Len())
}

func TestObjectMap_PutOverwrites(t *testing.T) {
	m := New[*filterQuery, string](canonical)
	q1 := &filterQuery{path: "rooms"}
	q2 := &filterQuery{path: "rooms"}

	m.Put(q1, "first")
	m.Put(q2, "second")

	assert.Equal(t, 1, m.Len())
	v, _ := m.Get(q1)
	assert.Equal(t, "second", v)

	var stored *filterQuery
	m.ForEach(func(k *filterQuery, _ string) bool {
		stored = k
		return true
	})
	assert.Same(t, q2, stored)
}

func TestObjectMap_Delete(t *testing.T) {
	m := New[*filterQuery, int](canonical)
	q := &filterQuery{path: "rooms"}

	assert.False(t, m.Delete(q))
	m.Put(q, 1)
	assert.True(t, m.Delete(&filterQuery{path: "rooms"}))
	assert.False(t, m.Has(q))
	assert.Equal(t, 0, m.Len())

	_, ok := m.Get(q)
	assert.False(t, ok)
}

func TestObjectMap_ForEachStopsEarly(t *testing.T) {
	m := New[*filterQuery, int](canonical)
	for i, p := range []string{"a", "b", "c", "d"} {
		m.Put(&filterQuery{path: p}, i)
	}

	visited := 0
	m.ForEach(func(*filterQuery, int) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)

	sum := 0
	for _, v := range m.All() {
		sum += v
	}
	assert.Equal(t, 0+1+2+3, sum)
}
