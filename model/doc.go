// Package model defines core types used throughout querycache.
//
// # Identity Types
//
//   - TargetID: Identifier of a registered query subscription (uint32)
//   - DocumentKey: Slash separated document path ("rooms/eros/messages/1")
//   - SnapshotVersion: Logical timestamp of the remote change stream
//   - SnapshotKey: Composite (TargetID, SnapshotVersion) change-log key
//
// # Data Types
//
//   - DocumentKeySet: Immutable, sorted set of document keys
//   - QueryData: Sync metadata bound to one registered query
//   - TargetChange: Added/modified/removed keys observed for one target
//
// # Building Key Sets
//
// Sets are values. Every mutation returns a new set:
//
//	keys := model.NewDocumentKeySet(
//	    model.MustDocumentKey("rooms/eros"),
//	    model.MustDocumentKey("rooms/other"),
//	)
//	keys = keys.Union(moreKeys).Difference(removed)
package model
