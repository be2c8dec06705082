// Package changelog provides the per-target change log of the query cache.
//
// # Architecture
//
// All targets share one flat, sorted array of entries ordered by
// (TargetID, SnapshotVersion):
//
//	[ (1,v10) (1,v20) (1,v35) | (2,v12) | (5,v3) (5,v9) ]
//	  └──── target 1 ────────┘   └ t2 ┘   └── target 5 ──┘
//
// The ordering partitions the array by target. A binary search finds the
// first entry >= (target, version) and a forward scan that stops at the
// first foreign target id serves both "changes since" queries and target
// removal, so no secondary per-target index is needed.
//
// # Performance
//
//   - Insert: O(log n) search + O(n) shift (appends are O(1) amortized when
//     versions arrive in order, which is the common case per target)
//   - ScanFrom: O(log n + k) where k is the number of matching entries
//   - RemoveTarget: O(log n + k) scan + one contiguous slice deletion
package changelog
