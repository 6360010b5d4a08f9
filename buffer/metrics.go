package buffer

import (
	"github.com/c360/prodcon/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// bufferMetrics holds Prometheus metrics for buffer operations.
type bufferMetrics struct {
	produced  prometheus.Counter
	consumed  prometheus.Counter
	fullWaits prometheus.Counter
	timeouts  prometheus.Counter

	size        prometheus.Gauge
	utilization prometheus.Gauge
}

// newBufferMetrics creates and registers buffer metrics with the provided registry.
func newBufferMetrics(registry *metric.MetricsRegistry, prefix string) (*bufferMetrics, error) {
	m := &bufferMetrics{
		produced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "prodcon",
			Subsystem:   "buffer",
			Name:        "produced_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of successful insertions",
		}),
		consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "prodcon",
			Subsystem:   "buffer",
			Name:        "consumed_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of successful removals",
		}),
		fullWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "prodcon",
			Subsystem:   "buffer",
			Name:        "full_waits_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of producer slot-wait timeouts",
		}),
		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "prodcon",
			Subsystem:   "buffer",
			Name:        "consume_timeouts_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of abandoned consume attempts",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "prodcon",
			Subsystem:   "buffer",
			Name:        "size",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Current number of items in buffer",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "prodcon",
			Subsystem:   "buffer",
			Name:        "utilization",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Buffer utilization as a percentage (0.0 to 1.0)",
		}),
	}

	// Register all metrics with the registry
	if err := registry.RegisterCounter(prefix, "buffer_produced", m.produced); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_consumed", m.consumed); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_full_waits", m.fullWaits); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(prefix, "buffer_consume_timeouts", m.timeouts); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "buffer_size", m.size); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "buffer_utilization", m.utilization); err != nil {
		return nil, err
	}

	return m, nil
}

// recordProduce increments the produced counter and updates size/utilization.
func (m *bufferMetrics) recordProduce(size, capacity int) {
	m.produced.Inc()
	m.size.Set(float64(size))
	m.utilization.Set(float64(size) / float64(capacity))
}

// recordConsume increments the consumed counter and updates size/utilization.
func (m *bufferMetrics) recordConsume(size, capacity int) {
	m.consumed.Inc()
	m.size.Set(float64(size))
	m.utilization.Set(float64(size) / float64(capacity))
}

// recordFullWait increments the full-wait counter.
func (m *bufferMetrics) recordFullWait() {
	m.fullWaits.Inc()
}

// recordTimeout increments the consume-timeout counter.
func (m *bufferMetrics) recordTimeout() {
	m.timeouts.Inc()
}
