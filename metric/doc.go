// Package metric provides the Prometheus metrics registry and the core
// run-level metrics for prodcon.
//
// A MetricsRegistry wraps a private prometheus.Registry, pre-registers the
// core run metrics and the Go runtime collectors, and lets components
// register their own collectors under a "component.metric" key with
// duplicate detection. The buffer registers its size/utilization gauges
// and wait counters this way; workers record per-id item counts through
// the core Metrics helpers.
//
// An optional HTTP Server exposes the registry via promhttp for runs long
// enough to be worth scraping. It is disabled by default.
package metric
