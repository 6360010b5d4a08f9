package buffer

import (
	"time"

	"github.com/c360/prodcon/metric"
)

// Option configures buffer behavior using the functional options pattern.
type Option func(*bufferOptions)

// bufferOptions holds internal configuration for buffer instances.
// Stats are always collected; metrics are optional via WithMetrics().
type bufferOptions struct {
	retryDelay time.Duration
	maxWait    time.Duration

	// metricsReg is optional - if provided, buffer stats are also exposed
	// as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsPrefix is used as the component label for Prometheus metrics
	metricsPrefix string
}

// WithProducerRetryDelay sets the bounded wait of a single slot-acquisition
// attempt. Defaults to DefaultProducerRetryDelay.
func WithProducerRetryDelay(d time.Duration) Option {
	return func(opts *bufferOptions) {
		if d > 0 {
			opts.retryDelay = d
		}
	}
}

// WithConsumerMaxWait sets the abandon wait of a consume attempt.
// Defaults to DefaultConsumerMaxWait.
func WithConsumerMaxWait(d time.Duration) Option {
	return func(opts *bufferOptions) {
		if d > 0 {
			opts.maxWait = d
		}
	}
}

// WithMetrics enables Prometheus metrics export for buffer statistics.
// If registry is nil or prefix empty, this option is ignored.
func WithMetrics(registry *metric.MetricsRegistry, prefix string) Option {
	return func(opts *bufferOptions) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// applyOptions applies functional options to create final buffer configuration.
func applyOptions(options ...Option) *bufferOptions {
	opts := &bufferOptions{
		retryDelay: DefaultProducerRetryDelay,
		maxWait:    DefaultConsumerMaxWait,
	}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
