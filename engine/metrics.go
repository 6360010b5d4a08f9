package engine

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/prodcon/metric"
)

// engineMetrics holds Prometheus metrics for run-level coordination.
type engineMetrics struct {
	runs        prometheus.Counter   // Completed runs
	runDuration prometheus.Histogram // Wall-clock run duration
	remaining   prometheus.Gauge     // Items left in the buffer after join
}

// newEngineMetrics creates and registers engine metrics with the provided registry.
func newEngineMetrics(registry *metric.MetricsRegistry) (*engineMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &engineMetrics{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "prodcon",
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Total number of completed runs",
		}),

		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "prodcon",
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a complete run in seconds",
			Buckets:   []float64{0.1, 0.5, 1.0, 5.0, 15.0, 60.0, 300.0},
		}),

		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "prodcon",
			Subsystem: "engine",
			Name:      "remaining_items",
			Help:      "Items left in the buffer when the run finished",
		}),
	}

	if err := registry.RegisterCounter("engine", "runs", m.runs); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram("engine", "run_duration", m.runDuration); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge("engine", "remaining_items", m.remaining); err != nil {
		return nil, err
	}

	return m, nil
}

// recordRun records a completed run.
func (m *engineMetrics) recordRun(report *Report) {
	if m == nil {
		return
	}

	m.runs.Inc()
	m.runDuration.Observe(report.Elapsed.Seconds())
	m.remaining.Set(float64(len(report.Remaining)))
}
