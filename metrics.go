package querycache

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see the metrics/prom package).
type MetricsCollector interface {
	// RecordAddTarget is called after each AddQueryData.
	RecordAddTarget(duration time.Duration, err error)

	// RecordUpdateTarget is called after each UpdateQueryData.
	RecordUpdateTarget(duration time.Duration, err error)

	// RecordRemoveTarget is called after each RemoveQueryData.
	RecordRemoveTarget(duration time.Duration, err error)

	// RecordApplyTargetChange is called after each ApplyTargetChange.
	// keys is the number of documents recorded in the change log.
	RecordApplyTargetChange(keys int, duration time.Duration, err error)

	// RecordChangesSince is called after each ChangesSince.
	// changeSets is the number of change-log entries scanned.
	RecordChangesSince(changeSets int, duration time.Duration)

	// RecordGarbageCandidate is called for every document that lost its last reference.
	RecordGarbageCandidate()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAddTarget(time.Duration, error)              {}
func (NoopMetricsCollector) RecordUpdateTarget(time.Duration, error)           {}
func (NoopMetricsCollector) RecordRemoveTarget(time.Duration, error)           {}
func (NoopMetricsCollector) RecordApplyTargetChange(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordChangesSince(int, time.Duration)             {}
func (NoopMetricsCollector) RecordGarbageCandidate()                           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount          atomic.Int64
	AddErrors         atomic.Int64
	UpdateCount       atomic.Int64
	UpdateErrors      atomic.Int64
	RemoveCount       atomic.Int64
	RemoveErrors      atomic.Int64
	ApplyCount        atomic.Int64
	ApplyErrors       atomic.Int64
	ApplyKeys         atomic.Int64
	ApplyTotalNanos   atomic.Int64
	ChangesSinceCount atomic.Int64
	ChangeSetsScanned atomic.Int64
	GarbageCandidates atomic.Int64
}

// RecordAddTarget implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAddTarget(duration time.Duration, err error) {
	b.AddCount.Add(1)
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordUpdateTarget implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdateTarget(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordRemoveTarget implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemoveTarget(duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordApplyTargetChange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordApplyTargetChange(keys int, duration time.Duration, err error) {
	b.ApplyCount.Add(1)
	b.ApplyTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ApplyErrors.Add(1)
		return
	}
	b.ApplyKeys.Add(int64(keys))
}

// RecordChangesSince implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChangesSince(changeSets int, duration time.Duration) {
	b.ChangesSinceCount.Add(1)
	b.ChangeSetsScanned.Add(int64(changeSets))
}

// RecordGarbageCandidate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGarbageCandidate() {
	b.GarbageCandidates.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:          b.AddCount.Load(),
		AddErrors:         b.AddErrors.Load(),
		UpdateCount:       b.UpdateCount.Load(),
		UpdateErrors:      b.UpdateErrors.Load(),
		RemoveCount:       b.RemoveCount.Load(),
		RemoveErrors:      b.RemoveErrors.Load(),
		ApplyCount:        b.ApplyCount.Load(),
		ApplyErrors:       b.ApplyErrors.Load(),
		ApplyKeys:         b.ApplyKeys.Load(),
		ApplyAvgNanos:     b.getAvgApplyNanos(),
		ChangesSinceCount: b.ChangesSinceCount.Load(),
		ChangeSetsScanned: b.ChangeSetsScanned.Load(),
		GarbageCandidates: b.GarbageCandidates.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgApplyNanos() int64 {
	count := b.ApplyCount.Load()
	if count == 0 {
		return 0
	}
	return b.ApplyTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount          int64
	AddErrors         int64
	UpdateCount       int64
	UpdateErrors      int64
	RemoveCount       int64
	RemoveErrors      int64
	ApplyCount        int64
	ApplyErrors       int64
	ApplyKeys         int64
	ApplyAvgNanos     int64
	ChangesSinceCount int64
	ChangeSetsScanned int64
	GarbageCandidates int64
}
