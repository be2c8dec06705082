// Package prom exports querycache metrics to Prometheus.
//
//	collector, err := prom.New(prometheus.DefaultRegisterer, "sync")
//	if err != nil {
//	    return err
//	}
//	cache := querycache.New(querycache.WithMetricsCollector(collector))
package prom

import (
	"time"

	"github.com/hupe1980/querycache"
	"github.com/prometheus/client_golang/prometheus"
)

var _ querycache.MetricsCollector = (*Collector)(nil)

// Collector implements querycache.MetricsCollector on Prometheus metrics.
type Collector struct {
	opLatency         *prometheus.HistogramVec
	ops               *prometheus.CounterVec
	changeKeys        prometheus.Histogram
	changeSetsScanned prometheus.Counter
	garbageCandidates prometheus.Counter
}

// New creates a Collector and registers its metrics with reg.
// namespace prefixes every metric name and may be empty.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "querycache_operation_latency_seconds",
			Help:      "Latency of query cache operations",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"op"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "querycache_operations_total",
			Help:      "Total query cache operations by outcome",
		}, []string{"op", "status"}),
		changeKeys: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "querycache_target_change_keys",
			Help:      "Documents recorded per applied target change",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		changeSetsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "querycache_change_sets_scanned_total",
			Help:      "Change-log entries scanned by changes-since queries",
		}),
		garbageCandidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "querycache_garbage_candidates_total",
			Help:      "Documents that lost their last reference",
		}),
	}

	for _, m := range []prometheus.Collector{
		c.opLatency, c.ops, c.changeKeys, c.changeSetsScanned, c.garbageCandidates,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) observe(op string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.opLatency.WithLabelValues(op).Observe(d.Seconds())
	c.ops.WithLabelValues(op, status).Inc()
}

// RecordAddTarget implements querycache.MetricsCollector.
func (c *Collector) RecordAddTarget(d time.Duration, err error) {
	c.observe("add_target", d, err)
}

// RecordUpdateTarget implements querycache.MetricsCollector.
func (c *Collector) RecordUpdateTarget(d time.Duration, err error) {
	c.observe("update_target", d, err)
}

// RecordRemoveTarget implements querycache.MetricsCollector.
func (c *Collector) RecordRemoveTarget(d time.Duration, err error) {
	c.observe("remove_target", d, err)
}

// RecordApplyTargetChange implements querycache.MetricsCollector.
func (c *Collector) RecordApplyTargetChange(keys int, d time.Duration, err error) {
	c.observe("apply_target_change", d, err)
	if err == nil {
		c.changeKeys.Observe(float64(keys))
	}
}

// RecordChangesSince implements querycache.MetricsCollector.
func (c *Collector) RecordChangesSince(changeSets int, d time.Duration) {
	c.observe("changes_since", d, nil)
	c.changeSetsScanned.Add(float64(changeSets))
}

// RecordGarbageCandidate implements querycache.MetricsCollector.
func (c *Collector) RecordGarbageCandidate() {
	c.garbageCandidates.Inc()
}
