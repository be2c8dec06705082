package changelog

import (
	"iter"
	"math"
	"slices"

	"github.com/hupe1980/querycache/model"
)

// Entry is one recorded change set.
type Entry struct {
	Key  model.SnapshotKey
	Keys model.DocumentKeySet
}

// Index is an ordered log of change sets keyed by model.SnapshotKey.
// Invariant: entries is sorted ascending by Key with no duplicate keys.
// Not safe for concurrent use.
type Index struct {
	entries []Entry
}

// New creates an empty Index.
func New() *Index {
	return &Index{}
}

func (idx *Index) search(key model.SnapshotKey) (int, bool) {
	return slices.BinarySearchFunc(idx.entries, key, func(e Entry, k model.SnapshotKey) int {
		return e.Key.Compare(k)
	})
}

// Insert installs keys at key, overwriting an existing entry with the same key.
func (idx *Index) Insert(key model.SnapshotKey, keys model.DocumentKeySet) {
	// Fast path: in-order append.
	if n := len(idx.entries); n == 0 || idx.entries[n-1].Key.Compare(key) < 0 {
		idx.entries = append(idx.entries, Entry{Key: key, Keys: keys})
		return
	}

	i, found := idx.search(key)
	if found {
		idx.entries[i].Keys = keys
		return
	}
	idx.entries = slices.Insert(idx.entries, i, Entry{Key: key, Keys: keys})
}

// Get returns the change set stored at key.
func (idx *Index) Get(key model.SnapshotKey) (model.DocumentKeySet, bool) {
	i, found := idx.search(key)
	if !found {
		return model.DocumentKeySet{}, false
	}
	return idx.entries[i].Keys, true
}

// Scan yields every entry with a key >= from in ascending order.
// It crosses target boundaries; callers bound the scan themselves.
// The index must not be modified while the sequence is consumed.
func (idx *Index) Scan(from model.SnapshotKey) iter.Seq2[model.SnapshotKey, model.DocumentKeySet] {
	return func(yield func(model.SnapshotKey, model.DocumentKeySet) bool) {
		i, _ := idx.search(from)
		for ; i < len(idx.entries); i++ {
			if !yield(idx.entries[i].Key, idx.entries[i].Keys) {
				return
			}
		}
	}
}

// ScanFrom yields the entries of targetID recorded at or after version, in
// ascending version order.
func (idx *Index) ScanFrom(targetID model.TargetID, version model.SnapshotVersion) iter.Seq2[model.SnapshotKey, model.DocumentKeySet] {
	return func(yield func(model.SnapshotKey, model.DocumentKeySet) bool) {
		for key, keys := range idx.Scan(model.SnapshotKey{TargetID: targetID, Version: version}) {
			if key.TargetID != targetID {
				return
			}
			if !yield(key, keys) {
				return
			}
		}
	}
}

// RemoveTarget deletes every entry of targetID and returns how many were removed.
//
// The keys are collected in one bounded scan first and deleted afterwards, so
// the scan never observes a slice that is being rewritten.
func (idx *Index) RemoveTarget(targetID model.TargetID) int {
	var doomed []model.SnapshotKey
	for i := idx.lowerBound(targetID); i < len(idx.entries); i++ {
		if idx.entries[i].Key.TargetID != targetID {
			break
		}
		doomed = append(doomed, idx.entries[i].Key)
	}
	if len(doomed) == 0 {
		return 0
	}

	// Entries of one target are contiguous: delete [first, last].
	first, _ := idx.search(doomed[0])
	last, _ := idx.search(doomed[len(doomed)-1])
	idx.entries = slices.Delete(idx.entries, first, last+1)
	return len(doomed)
}

// lowerBound returns the position of the first entry of targetID, whatever its version.
func (idx *Index) lowerBound(targetID model.TargetID) int {
	i, _ := slices.BinarySearchFunc(idx.entries, targetID, func(e Entry, t model.TargetID) int {
		if e.Key.TargetID < t {
			return -1
		}
		return 1
	})
	return i
}

// Latest returns the newest version recorded for targetID.
func (idx *Index) Latest(targetID model.TargetID) (model.SnapshotVersion, bool) {
	// First position past every entry of targetID.
	i := len(idx.entries)
	if targetID < math.MaxUint32 {
		i = idx.lowerBound(targetID + 1)
	}
	if i == 0 || idx.entries[i-1].Key.TargetID != targetID {
		return model.MinSnapshotVersion, false
	}
	return idx.entries[i-1].Key.Version, true
}

// Targets returns the distinct target ids present in the log, ascending.
func (idx *Index) Targets() []model.TargetID {
	var out []model.TargetID
	for _, e := range idx.entries {
		if n := len(out); n == 0 || out[n-1] != e.Key.TargetID {
			out = append(out, e.Key.TargetID)
		}
	}
	return out
}

// Len returns the number of recorded change sets.
func (idx *Index) Len() int {
	return len(idx.entries)
}
