// Package refset provides the reference set of the query cache: a
// many-to-many association between documents and the targets that match them.
//
// # Architecture
//
// Two indexes are kept and updated together inside every method:
//
//	byTarget: map[TargetID]*Bitmap(doc ordinals)   - target → documents
//	docs:     []docRefs{key, *Bitmap(target ids)}  - document → targets
//
// Document keys are interned to dense uint32 ordinals so both directions can
// use Roaring Bitmaps. A document is interned exactly while it has at least
// one reference; its ordinal is recycled once the last reference is gone.
//
// # Garbage Notifications
//
// When a removal drops a document's last reference, the configured
// gc.Collector is told about it. Notifications are delivered after the
// mutation completes, so a collector calling back into the set observes a
// consistent state. Additions never notify.
//
// # Thread Safety
//
// Set is not safe for concurrent use. The owning cache serializes access.
package refset
