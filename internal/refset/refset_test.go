package refset

import (
	"testing"

	"github.com/hupe1980/querycache/gc"
	"github.com/hupe1980/querycache/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) AddPotentialGarbageKey(key model.DocumentKey) {
	m.Called(key)
}

func dk(p string) model.DocumentKey { return model.MustDocumentKey(p) }

func set(paths ...string) model.DocumentKeySet {
	ks := make([]model.DocumentKey, 0, len(paths))
	for _, p := range paths {
		ks = append(ks, dk(p))
	}
	return model.NewDocumentKeySet(ks...)
}

// requireSymmetric checks that both index directions describe the same associations.
func requireSymmetric(t *testing.T, s *Set) {
	t.Helper()
	forward := 0
	for tid, tb := range s.byTarget {
		require.False(t, tb.isEmpty(), "empty bitmap kept for target %d", tid)
		tb.forEach(func(ord uint32) bool {
			forward++
			require.NotNil(t, s.docs[ord].targets, "target %d points at recycled ordinal %d", tid, ord)
			require.True(t, s.docs[ord].targets.contains(uint32(tid)))
			return true
		})
	}
	backward := 0
	for key, ord := range s.ordinals {
		require.Equal(t, key, s.docs[ord].key)
		require.False(t, s.docs[ord].targets.isEmpty(), "interned key %s without references", key)
		s.docs[ord].targets.forEach(func(tid uint32) bool {
			backward++
			require.True(t, s.byTarget[model.TargetID(tid)].contains(ord))
			return true
		})
	}
	require.Equal(t, forward, backward)
}

func TestSet_AddAndQuery(t *testing.T) {
	s := New()
	s.AddReferences(set("a/1", "a/2"), 1)
	s.AddReferences(set("a/2", "a/3"), 2)
	s.AddReference(dk("a/2"), 1) // idempotent

	assert.True(t, s.ReferencesForID(1).Equal(set("a/1", "a/2")))
	assert.True(t, s.ReferencesForID(2).Equal(set("a/2", "a/3")))
	assert.True(t, s.ReferencesForID(3).IsEmpty())

	assert.True(t, s.ContainsKey(dk("a/1")))
	assert.False(t, s.ContainsKey(dk("a/9")))
	assert.True(t, s.HasReference(dk("a/2"), 2))
	assert.False(t, s.HasReference(dk("a/1"), 2))
	assert.Equal(t, []model.TargetID{1, 2}, s.TargetsForKey(dk("a/2")))
	assert.Nil(t, s.TargetsForKey(dk("a/9")))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Targets())
	requireSymmetric(t, s)
}

func TestSet_RemoveSingleReferenceNotifiesOnce(t *testing.T) {
	c := &mockCollector{}
	c.On("AddPotentialGarbageKey", dk("a/1")).Once()

	s := New()
	s.SetGarbageCollector(c)
	s.AddReferences(set("a/1"), 1)
	s.RemoveReferences(set("a/1"), 1)

	c.AssertExpectations(t)
	c.AssertNumberOfCalls(t, "AddPotentialGarbageKey", 1)
	assert.False(t, s.ContainsKey(dk("a/1")))
	assert.True(t, s.IsEmpty())
	requireSymmetric(t, s)
}

func TestSet_SharedReferenceDoesNotNotify(t *testing.T) {
	c := &mockCollector{}

	s := New()
	s.SetGarbageCollector(c)
	s.AddReference(dk("a/1"), 1)
	s.AddReference(dk("a/1"), 2)
	s.RemoveReference(dk("a/1"), 1)

	c.AssertNotCalled(t, "AddPotentialGarbageKey", mock.Anything)
	assert.True(t, s.ContainsKey(dk("a/1")))
	assert.Equal(t, []model.TargetID{2}, s.TargetsForKey(dk("a/1")))
	requireSymmetric(t, s)
}

func TestSet_RemoveMissingIsNoop(t *testing.T) {
	c := &mockCollector{}
	s := New()
	s.SetGarbageCollector(c)

	s.RemoveReference(dk("a/1"), 1)
	s.AddReference(dk("a/1"), 1)
	s.RemoveReference(dk("a/1"), 2)
	assert.Equal(t, 0, s.RemoveReferencesForID(7))

	c.AssertNotCalled(t, "AddPotentialGarbageKey", mock.Anything)
	assert.True(t, s.ContainsKey(dk("a/1")))
	requireSymmetric(t, s)
}

func TestSet_RemoveReferencesForID(t *testing.T) {
	var notified []model.DocumentKey
	s := New()
	s.SetGarbageCollector(gc.CollectorFunc(func(k model.DocumentKey) {
		notified = append(notified, k)
	}))

	s.AddReferences(set("c/3", "a/1", "b/2"), 1)
	s.AddReferences(set("b/2"), 2)

	assert.Equal(t, 3, s.RemoveReferencesForID(1))
	assert.Equal(t, []model.DocumentKey{dk("a/1"), dk("c/3")}, notified)
	assert.True(t, s.ReferencesForID(1).IsEmpty())
	assert.True(t, s.ReferencesForID(2).Equal(set("b/2")))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.Targets())
	requireSymmetric(t, s)
}

func TestSet_CollectorSeesConsistentState(t *testing.T) {
	s := New()
	s.SetGarbageCollector(gc.CollectorFunc(func(k model.DocumentKey) {
		assert.False(t, s.ContainsKey(k))
	}))
	s.AddReferences(set("a/1", "a/2"), 1)
	s.RemoveReferences(set("a/1", "a/2"), 1)
	assert.True(t, s.IsEmpty())
}

func TestSet_NilCollectorKeepsBookkeeping(t *testing.T) {
	c := &mockCollector{}
	s := New()
	s.SetGarbageCollector(c)
	s.SetGarbageCollector(nil)

	s.AddReference(dk("a/1"), 1)
	s.RemoveReference(dk("a/1"), 1)

	c.AssertNotCalled(t, "AddPotentialGarbageKey", mock.Anything)
	assert.False(t, s.ContainsKey(dk("a/1")))
}

func TestSet_OrdinalsAreRecycled(t *testing.T) {
	s := New()
	s.AddReference(dk("a/1"), 1)
	s.AddReference(dk("a/2"), 1)
	s.RemoveReference(dk("a/1"), 1)
	s.AddReference(dk("a/3"), 2)

	assert.Len(t, s.docs, 2, "freed ordinal should be reused")
	assert.True(t, s.ReferencesForID(1).Equal(set("a/2")))
	assert.True(t, s.ReferencesForID(2).Equal(set("a/3")))
	requireSymmetric(t, s)
}
