package querycache

import (
	"github.com/hupe1980/querycache/gc"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	garbageCollector gc.Collector
	strictVersions   bool
}

// Option configures a QueryCache.
type Option func(*options)

// WithLogger configures structured logging.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &querycache.BasicMetricsCollector{}
//	cache := querycache.New(querycache.WithMetricsCollector(metrics))
//	// ... later
//	stats := metrics.GetStats()
//	fmt.Printf("Targets added: %d\n", stats.AddCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithGarbageCollector installs the collector notified when a document loses
// its last reference. Equivalent to calling SetGarbageCollector after New.
func WithGarbageCollector(c gc.Collector) Option {
	return func(o *options) {
		o.garbageCollector = c
	}
}

// WithStrictVersionOrdering rejects snapshot versions that move backwards.
//
// By default callers are trusted to pass non-decreasing versions. In strict
// mode SetLastRemoteSnapshotVersion refuses a value below the current
// watermark and ApplyTargetChange refuses a version below the newest one
// recorded for the target. Both return ErrVersionRegression without mutating.
func WithStrictVersionOrdering() Option {
	return func(o *options) {
		o.strictVersions = true
	}
}
