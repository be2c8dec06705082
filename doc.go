// Package querycache provides the in-memory target index of a client-side
// document sync engine.
//
// For every registered query ("target") the cache tracks which documents
// currently match it, the change sets received from the remote change stream
// and which documents are still referenced by any target, so an external
// garbage collector can reclaim the rest.
//
// # Quick Start
//
//	cache := querycache.New(querycache.WithGarbageCollector(collector))
//
//	q := query.AtPath("rooms/eros/messages").OrderBy("sent", query.Descending).Limit(50)
//	data := model.NewQueryData(q, 2, model.PurposeListen)
//	if err := cache.AddQueryData(txn, data); err != nil {
//	    return err
//	}
//
// Apply what the remote stream reported for the target:
//
//	err := cache.ApplyTargetChange(txn, data.TargetID, model.TargetChange{
//	    Added:           model.NewDocumentKeySet(model.MustDocumentKey("rooms/eros/messages/1")),
//	    SnapshotVersion: model.NewSnapshotVersion(10, 0),
//	})
//
// Ask what changed since a version, or whether a document is still needed:
//
//	changed := cache.ChangesSince(txn, data.TargetID, lastSeen)
//	inUse := cache.ContainsKey(txn, key)
//
// # Components
//
//   - Query registry: canonical-id keyed map Query → QueryData
//   - Change log: one sorted array keyed by (TargetID, SnapshotVersion)
//   - Reference set: document ↔ target associations on Roaring Bitmaps
//
// Removing a target purges its references and its change log. Documents left
// without any reference are reported to the gc.Collector.
//
// # Concurrency
//
// A QueryCache performs no locking. All methods are synchronous in-memory
// computations; the host serializes access to one cache. Mutating methods
// check their preconditions before changing anything, so an error always
// means the cache is untouched.
//
// # Errors
//
// Lifecycle misuse (registering a query twice, updating or removing an
// unknown query) returns *RegistrationError wrapping ErrDuplicateRegistration
// or ErrMissingRegistration. With WithStrictVersionOrdering, snapshot
// versions moving backwards return *VersionError wrapping ErrVersionRegression.
package querycache
