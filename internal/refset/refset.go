package refset

import (
	"github.com/hupe1980/querycache/gc"
	"github.com/hupe1980/querycache/model"
)

// docRefs is the document → targets side of one interned document.
// targets is nil for a recycled ordinal.
type docRefs struct {
	key     model.DocumentKey
	targets *bitmap
}

// Set is a bidirectional index between document keys and target ids.
// Invariant: ordinal o is in byTarget[t] iff t is in docs[o].targets.
type Set struct {
	ordinals map[model.DocumentKey]uint32
	docs     []docRefs
	free     []uint32
	byTarget map[model.TargetID]*bitmap

	collector gc.Collector
}

// New creates an empty Set without a garbage collector.
func New() *Set {
	return &Set{
		ordinals: make(map[model.DocumentKey]uint32),
		byTarget: make(map[model.TargetID]*bitmap),
	}
}

// SetGarbageCollector installs c. A nil c disables notifications.
func (s *Set) SetGarbageCollector(c gc.Collector) {
	s.collector = c
}

// AddReference associates key with targetID.
func (s *Set) AddReference(key model.DocumentKey, targetID model.TargetID) {
	ord, ok := s.ordinals[key]
	if !ok {
		ord = s.intern(key)
	}
	s.docs[ord].targets.add(uint32(targetID))

	tb, ok := s.byTarget[targetID]
	if !ok {
		tb = newBitmap()
		s.byTarget[targetID] = tb
	}
	tb.add(ord)
}

// AddReferences associates every key in keys with targetID.
func (s *Set) AddReferences(keys model.DocumentKeySet, targetID model.TargetID) {
	for key := range keys.All() {
		s.AddReference(key, targetID)
	}
}

// RemoveReference drops the association between key and targetID, if any.
func (s *Set) RemoveReference(key model.DocumentKey, targetID model.TargetID) {
	if s.removeReference(key, targetID) {
		s.notify([]model.DocumentKey{key})
	}
}

// RemoveReferences drops the associations between keys and targetID.
func (s *Set) RemoveReferences(keys model.DocumentKeySet, targetID model.TargetID) {
	var garbage []model.DocumentKey
	for key := range keys.All() {
		if s.removeReference(key, targetID) {
			garbage = append(garbage, key)
		}
	}
	s.notify(garbage)
}

// RemoveReferencesForID drops every association of targetID and returns
// the number of associations removed.
func (s *Set) RemoveReferencesForID(targetID model.TargetID) int {
	tb, ok := s.byTarget[targetID]
	if !ok {
		return 0
	}
	delete(s.byTarget, targetID)

	var garbage []model.DocumentKey
	removed := 0
	tb.forEach(func(ord uint32) bool {
		d := &s.docs[ord]
		if d.targets.remove(uint32(targetID)) {
			removed++
		}
		if d.targets.isEmpty() {
			garbage = append(garbage, d.key)
			s.release(ord)
		}
		return true
	})

	// Deliver in key order rather than ordinal order.
	s.notify(model.NewDocumentKeySet(garbage...).Slice())
	return removed
}

// ReferencesForID returns the documents referenced by targetID.
func (s *Set) ReferencesForID(targetID model.TargetID) model.DocumentKeySet {
	tb, ok := s.byTarget[targetID]
	if !ok {
		return model.DocumentKeySet{}
	}
	keys := make([]model.DocumentKey, 0, tb.cardinality())
	tb.forEach(func(ord uint32) bool {
		keys = append(keys, s.docs[ord].key)
		return true
	})
	return model.NewDocumentKeySet(keys...)
}

// ContainsKey reports whether any target references key.
func (s *Set) ContainsKey(key model.DocumentKey) bool {
	_, ok := s.ordinals[key]
	return ok
}

// HasReference reports whether key is associated with targetID.
func (s *Set) HasReference(key model.DocumentKey, targetID model.TargetID) bool {
	ord, ok := s.ordinals[key]
	if !ok {
		return false
	}
	return s.docs[ord].targets.contains(uint32(targetID))
}

// TargetsForKey returns the targets referencing key in ascending order.
func (s *Set) TargetsForKey(key model.DocumentKey) []model.TargetID {
	ord, ok := s.ordinals[key]
	if !ok {
		return nil
	}
	ids := s.docs[ord].targets.toArray()
	out := make([]model.TargetID, len(ids))
	for i, id := range ids {
		out[i] = model.TargetID(id)
	}
	return out
}

// Targets returns the number of targets holding at least one reference.
func (s *Set) Targets() int {
	return len(s.byTarget)
}

// Len returns the number of referenced documents.
func (s *Set) Len() int {
	return len(s.ordinals)
}

// IsEmpty reports whether no document is referenced.
func (s *Set) IsEmpty() bool {
	return len(s.ordinals) == 0
}

// removeReference reports whether key became unreferenced.
func (s *Set) removeReference(key model.DocumentKey, targetID model.TargetID) bool {
	ord, ok := s.ordinals[key]
	if !ok {
		return false
	}
	d := &s.docs[ord]
	if !d.targets.remove(uint32(targetID)) {
		return false
	}

	if tb, ok := s.byTarget[targetID]; ok {
		tb.remove(ord)
		if tb.isEmpty() {
			delete(s.byTarget, targetID)
		}
	}

	if d.targets.isEmpty() {
		s.release(ord)
		return true
	}
	return false
}

func (s *Set) intern(key model.DocumentKey) uint32 {
	var ord uint32
	if n := len(s.free); n > 0 {
		ord = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		ord = uint32(len(s.docs))
		s.docs = append(s.docs, docRefs{})
	}
	s.docs[ord] = docRefs{key: key, targets: newBitmap()}
	s.ordinals[key] = ord
	return ord
}

func (s *Set) release(ord uint32) {
	delete(s.ordinals, s.docs[ord].key)
	s.docs[ord] = docRefs{}
	s.free = append(s.free, ord)
}

func (s *Set) notify(keys []model.DocumentKey) {
	if s.collector == nil {
		return
	}
	for _, key := range keys {
		s.collector.AddPotentialGarbageKey(key)
	}
}
