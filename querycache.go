package querycache

import (
	"time"

	"github.com/hupe1980/querycache/gc"
	"github.com/hupe1980/querycache/internal/changelog"
	"github.com/hupe1980/querycache/internal/refset"
	"github.com/hupe1980/querycache/internal/registry"
	"github.com/hupe1980/querycache/model"
)

var _ gc.Source = (*QueryCache)(nil)

// QueryCache is the in-memory target index of a sync engine.
//
// It owns the query registry, the per-target change log, the reference set
// and two watermarks (highest target id, last remote snapshot version).
//
// A QueryCache is not safe for concurrent use. The host serializes access,
// typically one cache per sync session. Every method takes the host's
// transaction handle; it is accepted for calling-convention compatibility
// and never inspected.
type QueryCache struct {
	queries *registry.ObjectMap[model.Query, model.QueryData]
	changes *changelog.Index
	refs    *refset.Set

	lastRemoteSnapshotVersion model.SnapshotVersion
	highestTargetID           model.TargetID
	targetCount               int

	collector gc.Collector
	logger    *Logger
	metrics   MetricsCollector
	strict    bool
}

// New creates an empty QueryCache.
func New(optFns ...Option) *QueryCache {
	opts := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &QueryCache{
		queries:                   registry.New[model.Query, model.QueryData](canonicalID),
		changes:                   changelog.New(),
		refs:                      refset.New(),
		lastRemoteSnapshotVersion: model.MinSnapshotVersion,
		collector:                 opts.garbageCollector,
		logger:                    opts.logger,
		metrics:                   opts.metricsCollector,
		strict:                    opts.strictVersions,
	}
	c.refs.SetGarbageCollector(gc.CollectorFunc(c.notifyGarbage))
	return c
}

func canonicalID(q model.Query) string {
	if q == nil {
		return ""
	}
	return q.CanonicalID()
}

// notifyGarbage forwards reference-set notifications to the installed collector.
func (c *QueryCache) notifyGarbage(key model.DocumentKey) {
	c.metrics.RecordGarbageCandidate()
	if c.collector != nil {
		c.collector.AddPotentialGarbageKey(key)
	}
}

// SetGarbageCollector installs the collector notified when a document loses
// its last reference. A nil collector disables notifications; reference
// bookkeeping is unaffected.
func (c *QueryCache) SetGarbageCollector(collector gc.Collector) {
	c.collector = collector
}

// AddQueryData registers a new target. The cache keeps its own copy of data.
//
// Returns ErrDuplicateRegistration (wrapped in *RegistrationError) if
// data.Query is already registered; the cache is not modified in that case.
func (c *QueryCache) AddQueryData(txn model.Transaction, data model.QueryData) error {
	start := time.Now()
	if c.queries.Has(data.Query) {
		err := newRegistrationError("AddQueryData", data, ErrDuplicateRegistration)
		c.logger.LogPreconditionFailed("AddQueryData", err)
		c.metrics.RecordAddTarget(time.Since(start), err)
		return err
	}

	c.queries.Put(data.Query, data.Clone())
	c.raiseHighestTargetID(data.TargetID)
	c.targetCount++

	c.logger.LogAddTarget(data, c.targetCount)
	c.metrics.RecordAddTarget(time.Since(start), nil)
	return nil
}

// UpdateQueryData replaces the metadata of a registered target in place.
//
// Returns ErrMissingRegistration (wrapped in *RegistrationError) if
// data.Query is not registered.
func (c *QueryCache) UpdateQueryData(txn model.Transaction, data model.QueryData) error {
	start := time.Now()
	if !c.queries.Has(data.Query) {
		err := newRegistrationError("UpdateQueryData", data, ErrMissingRegistration)
		c.logger.LogPreconditionFailed("UpdateQueryData", err)
		c.metrics.RecordUpdateTarget(time.Since(start), err)
		return err
	}

	c.queries.Put(data.Query, data.Clone())
	c.raiseHighestTargetID(data.TargetID)

	c.logger.LogUpdateTarget(data)
	c.metrics.RecordUpdateTarget(time.Since(start), nil)
	return nil
}

// RemoveQueryData unregisters a target and purges everything recorded for it:
// its references (notifying the garbage collector for documents left
// unreferenced) and its change log.
//
// Returns ErrMissingRegistration (wrapped in *RegistrationError) if the cache
// is empty or data.Query is not registered.
func (c *QueryCache) RemoveQueryData(txn model.Transaction, data model.QueryData) error {
	start := time.Now()
	registered, ok := c.queries.Get(data.Query)
	if c.targetCount == 0 || !ok {
		err := newRegistrationError("RemoveQueryData", data, ErrMissingRegistration)
		c.logger.LogPreconditionFailed("RemoveQueryData", err)
		c.metrics.RecordRemoveTarget(time.Since(start), err)
		return err
	}

	// Purge by the registered target id so a stale caller copy cannot leave orphans.
	targetID := registered.TargetID
	c.queries.Delete(data.Query)
	references := c.refs.RemoveReferencesForID(targetID)
	c.targetCount--
	changeSets := c.changes.RemoveTarget(targetID)

	c.logger.LogRemoveTarget(targetID, references, changeSets)
	c.metrics.RecordRemoveTarget(time.Since(start), nil)
	return nil
}

// QueryData returns a copy of the metadata registered for query.
func (c *QueryCache) QueryData(txn model.Transaction, query model.Query) (model.QueryData, bool) {
	data, ok := c.queries.Get(query)
	if !ok {
		return model.QueryData{}, false
	}
	return data.Clone(), true
}

// Query returns the query registered under targetID.
// Linear in the number of targets; no reverse index is kept.
func (c *QueryCache) Query(txn model.Transaction, targetID model.TargetID) (model.Query, bool) {
	var (
		found model.Query
		ok    bool
	)
	c.queries.ForEach(func(q model.Query, d model.QueryData) bool {
		if d.TargetID == targetID {
			found, ok = q, true
			return false
		}
		return true
	})
	return found, ok
}

// ForEachTarget calls fn with a copy of every registered target in
// unspecified order until fn returns false.
func (c *QueryCache) ForEachTarget(txn model.Transaction, fn func(model.QueryData) bool) {
	c.queries.ForEach(func(_ model.Query, d model.QueryData) bool {
		return fn(d.Clone())
	})
}

// MatchingKeysForTargetID returns the documents currently referenced by targetID.
func (c *QueryCache) MatchingKeysForTargetID(txn model.Transaction, targetID model.TargetID) model.DocumentKeySet {
	return c.refs.ReferencesForID(targetID)
}

// AddMatchingKeys references keys from targetID without recording a change set.
func (c *QueryCache) AddMatchingKeys(txn model.Transaction, keys model.DocumentKeySet, targetID model.TargetID) {
	c.refs.AddReferences(keys, targetID)
}

// RemoveMatchingKeys drops the references from targetID to keys without
// recording a change set.
func (c *QueryCache) RemoveMatchingKeys(txn model.Transaction, keys model.DocumentKeySet, targetID model.TargetID) {
	c.refs.RemoveReferences(keys, targetID)
}

// RemoveMatchingKeysForTargetID drops every reference held by targetID.
// The target stays registered and its change log is kept.
func (c *QueryCache) RemoveMatchingKeysForTargetID(txn model.Transaction, targetID model.TargetID) {
	c.refs.RemoveReferencesForID(targetID)
}

// ContainsKey reports whether any target references key.
func (c *QueryCache) ContainsKey(txn model.Transaction, key model.DocumentKey) bool {
	return c.refs.ContainsKey(key)
}

// ChangesSince returns every document recorded for targetID at or after version.
func (c *QueryCache) ChangesSince(txn model.Transaction, targetID model.TargetID, version model.SnapshotVersion) model.DocumentKeySet {
	start := time.Now()
	var (
		changed    []model.DocumentKey
		changeSets int
	)
	for _, keys := range c.changes.ScanFrom(targetID, version) {
		changed = append(changed, keys.Slice()...)
		changeSets++
	}
	c.metrics.RecordChangesSince(changeSets, time.Since(start))
	return model.NewDocumentKeySet(changed...)
}

// ApplyTargetChange records change for targetID.
//
// Added ∪ Modified ∪ Removed is stored in the change log at
// (targetID, change.SnapshotVersion), Added documents gain a reference from
// targetID and Removed documents lose it. Modified documents were already
// referenced and are left alone.
//
// Only fails in strict mode (see WithStrictVersionOrdering).
func (c *QueryCache) ApplyTargetChange(txn model.Transaction, targetID model.TargetID, change model.TargetChange) error {
	start := time.Now()
	if c.strict {
		if latest, ok := c.changes.Latest(targetID); ok && change.SnapshotVersion.Before(latest) {
			err := &VersionError{
				Op:       "ApplyTargetChange",
				TargetID: targetID,
				Current:  latest,
				Proposed: change.SnapshotVersion,
			}
			c.logger.LogPreconditionFailed("ApplyTargetChange", err)
			c.metrics.RecordApplyTargetChange(0, time.Since(start), err)
			return err
		}
	}

	all := change.AllKeys()
	c.changes.Insert(model.SnapshotKey{TargetID: targetID, Version: change.SnapshotVersion}, all)
	c.refs.AddReferences(change.Added, targetID)
	c.refs.RemoveReferences(change.Removed, targetID)

	c.logger.LogApplyTargetChange(targetID, change)
	c.metrics.RecordApplyTargetChange(all.Len(), time.Since(start), nil)
	return nil
}

// LastRemoteSnapshotVersion returns the newest snapshot version received from the remote stream.
func (c *QueryCache) LastRemoteSnapshotVersion() model.SnapshotVersion {
	return c.lastRemoteSnapshotVersion
}

// SetLastRemoteSnapshotVersion stores the remote snapshot watermark.
//
// Callers are expected to pass non-decreasing versions. In strict mode a
// regression returns ErrVersionRegression and leaves the watermark unchanged.
func (c *QueryCache) SetLastRemoteSnapshotVersion(txn model.Transaction, version model.SnapshotVersion) error {
	if c.strict && version.Before(c.lastRemoteSnapshotVersion) {
		err := &VersionError{
			Op:       "SetLastRemoteSnapshotVersion",
			Current:  c.lastRemoteSnapshotVersion,
			Proposed: version,
		}
		c.logger.LogPreconditionFailed("SetLastRemoteSnapshotVersion", err)
		return err
	}
	c.lastRemoteSnapshotVersion = version
	return nil
}

// HighestTargetID returns the highest target id ever registered.
func (c *QueryCache) HighestTargetID() model.TargetID {
	return c.highestTargetID
}

// Count returns the number of registered targets.
func (c *QueryCache) Count() int {
	return c.targetCount
}

func (c *QueryCache) raiseHighestTargetID(id model.TargetID) {
	if id > c.highestTargetID {
		c.highestTargetID = id
	}
}

// Stats is a point-in-time summary of a QueryCache.
type Stats struct {
	Targets                   int
	ChangeSets                int
	ReferencedDocuments       int
	HighestTargetID           model.TargetID
	LastRemoteSnapshotVersion model.SnapshotVersion
}

// Stats returns a summary of the cache contents.
func (c *QueryCache) Stats() Stats {
	return Stats{
		Targets:                   c.targetCount,
		ChangeSets:                c.changes.Len(),
		ReferencedDocuments:       c.refs.Len(),
		HighestTargetID:           c.highestTargetID,
		LastRemoteSnapshotVersion: c.lastRemoteSnapshotVersion,
	}
}
