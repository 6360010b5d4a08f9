package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the run-level metrics shared by the engine and workers.
// Buffer-level metrics (size, utilization, waits) are registered by the
// buffer itself.
type Metrics struct {
	// Run lifecycle
	RunStatus     prometheus.Gauge
	WorkersActive *prometheus.GaugeVec

	// Per-worker accounting
	ItemsProduced   *prometheus.CounterVec
	ItemsConsumed   *prometheus.CounterVec
	ConsumeTimeouts *prometheus.CounterVec
}

// Run status values exported via RunStatus.
const (
	RunIdle     = 0
	RunRunning  = 1
	RunFinished = 2
)

// NewMetrics creates a new Metrics instance with all run-level metrics
func NewMetrics() *Metrics {
	return &Metrics{
		RunStatus: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "prodcon",
				Subsystem: "run",
				Name:      "status",
				Help:      "Run status (0=idle, 1=running, 2=finished)",
			},
		),

		WorkersActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "prodcon",
				Subsystem: "workers",
				Name:      "active",
				Help:      "Number of workers currently running",
			},
			[]string{"role"},
		),

		ItemsProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prodcon",
				Subsystem: "items",
				Name:      "produced_total",
				Help:      "Total number of items inserted into the buffer",
			},
			[]string{"producer"},
		),

		ItemsConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prodcon",
				Subsystem: "items",
				Name:      "consumed_total",
				Help:      "Total number of items removed from the buffer",
			},
			[]string{"consumer"},
		),

		ConsumeTimeouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prodcon",
				Subsystem: "items",
				Name:      "consume_timeouts_total",
				Help:      "Total number of abandoned consume attempts",
			},
			[]string{"consumer"},
		),
	}
}

// RecordRunStatus updates the run status gauge
func (c *Metrics) RecordRunStatus(status int) {
	c.RunStatus.Set(float64(status))
}

// RecordWorkerStarted increments the active-worker gauge for a role
func (c *Metrics) RecordWorkerStarted(role string) {
	c.WorkersActive.WithLabelValues(role).Inc()
}

// RecordWorkerFinished decrements the active-worker gauge for a role
func (c *Metrics) RecordWorkerFinished(role string) {
	c.WorkersActive.WithLabelValues(role).Dec()
}

// RecordItemProduced increments the produced counter for a producer id
func (c *Metrics) RecordItemProduced(producerID int) {
	c.ItemsProduced.WithLabelValues(strconv.Itoa(producerID)).Inc()
}

// RecordItemConsumed increments the consumed counter for a consumer id
func (c *Metrics) RecordItemConsumed(consumerID int) {
	c.ItemsConsumed.WithLabelValues(strconv.Itoa(consumerID)).Inc()
}

// RecordConsumeTimeout increments the timeout counter for a consumer id
func (c *Metrics) RecordConsumeTimeout(consumerID int) {
	c.ConsumeTimeouts.WithLabelValues(strconv.Itoa(consumerID)).Inc()
}
