package model

import (
	"iter"
	"slices"
	"strings"
)

// DocumentKeySet is an immutable, sorted set of document keys.
// The zero value is an empty set. All operations return new sets and never
// modify the receiver, so sets can be shared freely.
type DocumentKeySet struct {
	keys []DocumentKey // sorted by DocumentKey.Compare, no duplicates
}

// EmptyDocumentKeySet is the empty set.
var EmptyDocumentKeySet = DocumentKeySet{}

// NewDocumentKeySet builds a set from keys. Duplicates are dropped.
func NewDocumentKeySet(keys ...DocumentKey) DocumentKeySet {
	if len(keys) == 0 {
		return DocumentKeySet{}
	}
	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, DocumentKey.Compare)
	sorted = slices.CompactFunc(sorted, func(a, b DocumentKey) bool { return a == b })
	return DocumentKeySet{keys: slices.Clip(sorted)}
}

// Len returns the number of keys in the set.
func (s DocumentKeySet) Len() int { return len(s.keys) }

// IsEmpty reports whether the set has no keys.
func (s DocumentKeySet) IsEmpty() bool { return len(s.keys) == 0 }

// Has reports whether key is a member of the set.
func (s DocumentKeySet) Has(key DocumentKey) bool {
	_, found := slices.BinarySearchFunc(s.keys, key, DocumentKey.Compare)
	return found
}

// Insert returns a set that also contains key.
func (s DocumentKeySet) Insert(key DocumentKey) DocumentKeySet {
	i, found := slices.BinarySearchFunc(s.keys, key, DocumentKey.Compare)
	if found {
		return s
	}
	out := make([]DocumentKey, 0, len(s.keys)+1)
	out = append(out, s.keys[:i]...)
	out = append(out, key)
	out = append(out, s.keys[i:]...)
	return DocumentKeySet{keys: out}
}

// Delete returns a set without key.
func (s DocumentKeySet) Delete(key DocumentKey) DocumentKeySet {
	i, found := slices.BinarySearchFunc(s.keys, key, DocumentKey.Compare)
	if !found {
		return s
	}
	if len(s.keys) == 1 {
		return DocumentKeySet{}
	}
	out := make([]DocumentKey, 0, len(s.keys)-1)
	out = append(out, s.keys[:i]...)
	out = append(out, s.keys[i+1:]...)
	return DocumentKeySet{keys: out}
}

// Union returns the keys present in s or o.
func (s DocumentKeySet) Union(o DocumentKeySet) DocumentKeySet {
	if o.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return o
	}
	out := make([]DocumentKey, 0, len(s.keys)+len(o.keys))
	i, j := 0, 0
	for i < len(s.keys) && j < len(o.keys) {
		switch c := s.keys[i].Compare(o.keys[j]); {
		case c < 0:
			out = append(out, s.keys[i])
			i++
		case c > 0:
			out = append(out, o.keys[j])
			j++
		default:
			out = append(out, s.keys[i])
			i++
			j++
		}
	}
	out = append(out, s.keys[i:]...)
	out = append(out, o.keys[j:]...)
	return DocumentKeySet{keys: slices.Clip(out)}
}

// Difference returns the keys present in s but not in o.
func (s DocumentKeySet) Difference(o DocumentKeySet) DocumentKeySet {
	if s.IsEmpty() || o.IsEmpty() {
		return s
	}
	out := make([]DocumentKey, 0, len(s.keys))
	j := 0
	for _, k := range s.keys {
		for j < len(o.keys) && o.keys[j].Compare(k) < 0 {
			j++
		}
		if j < len(o.keys) && o.keys[j] == k {
			continue
		}
		out = append(out, k)
	}
	if len(out) == 0 {
		return DocumentKeySet{}
	}
	return DocumentKeySet{keys: slices.Clip(out)}
}

// Equal reports whether both sets contain the same keys.
func (s DocumentKeySet) Equal(o DocumentKeySet) bool {
	return slices.Equal(s.keys, o.keys)
}

// All iterates the keys in ascending order.
func (s DocumentKeySet) All() iter.Seq[DocumentKey] {
	return slices.Values(s.keys)
}

// Slice returns the keys in ascending order. The result is a copy.
func (s DocumentKeySet) Slice() []DocumentKey {
	return slices.Clone(s.keys)
}

// String returns a string representation of the DocumentKeySet.
func (s DocumentKeySet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k.path)
	}
	b.WriteByte('}')
	return b.String()
}
