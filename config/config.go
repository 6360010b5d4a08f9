// Package config defines the run parameters for prodcon and their
// validation.
package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/c360/prodcon/buffer"
	"github.com/c360/prodcon/errors"
	"github.com/c360/prodcon/sink"
	"github.com/c360/prodcon/worker"
)

// Config holds the parameters of a single run. The four positional CLI
// arguments populate Capacity, ItemsPerWorker, Producers and Consumers;
// everything else has defaults and is overridable by flags.
type Config struct {
	// Positional parameters, all strictly positive
	Capacity       int `json:"capacity"`
	ItemsPerWorker int `json:"items_per_worker"`
	Producers      int `json:"producers"`
	Consumers      int `json:"consumers"`

	// Timing
	ProducerRetryDelay time.Duration `json:"producer_retry_delay"`
	ConsumerMaxWait    time.Duration `json:"consumer_max_wait"`
	ProducerPace       time.Duration `json:"producer_pace"`
	ConsumerPace       time.Duration `json:"consumer_pace"`

	// Output
	LogPath string `json:"log_path"`

	// Observability; 0 disables the metrics server
	MetricsPort int `json:"metrics_port"`
}

// Default returns a configuration with every non-positional parameter set
// to its default value. Positional parameters start at zero and fail
// validation until populated.
func Default() Config {
	return Config{
		ProducerRetryDelay: buffer.DefaultProducerRetryDelay,
		ConsumerMaxWait:    buffer.DefaultConsumerMaxWait,
		ProducerPace:       worker.DefaultProducerPace,
		ConsumerPace:       worker.DefaultConsumerPace,
		LogPath:            sink.DefaultLogPath,
	}
}

// ParseArgs populates the positional parameters from args, which must be
// exactly four strictly positive integers:
// <buffer_capacity> <items_per_worker> <producer_count> <consumer_count>.
func (c *Config) ParseArgs(args []string) error {
	if len(args) != 4 {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "ParseArgs",
			fmt.Sprintf("reading %d positional arguments (want 4)", len(args)))
	}

	fields := []struct {
		name string
		dst  *int
	}{
		{"buffer_capacity", &c.Capacity},
		{"items_per_worker", &c.ItemsPerWorker},
		{"producer_count", &c.Producers},
		{"consumer_count", &c.Consumers},
	}

	for i, field := range fields {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "ParseArgs",
				fmt.Sprintf("parsing %q as %s", args[i], field.name))
		}
		*field.dst = v
	}

	return c.Validate()
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	positives := []struct {
		name  string
		value int
	}{
		{"buffer_capacity", c.Capacity},
		{"items_per_worker", c.ItemsPerWorker},
		{"producer_count", c.Producers},
		{"consumer_count", c.Consumers},
	}

	for _, p := range positives {
		if p.value <= 0 {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
				fmt.Sprintf("checking %s=%d (must be positive)", p.name, p.value))
		}
	}

	if c.ProducerRetryDelay <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"checking producer_retry_delay (must be positive)")
	}
	if c.ConsumerMaxWait <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"checking consumer_max_wait (must be positive)")
	}
	if c.ConsumerMaxWait <= c.ProducerRetryDelay {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"checking consumer_max_wait (must exceed producer_retry_delay)")
	}
	if c.ProducerPace < 0 || c.ConsumerPace < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"checking pacing delays (cannot be negative)")
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("checking metrics_port=%d (out of range)", c.MetricsPort))
	}
	if c.LogPath == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"checking log_path (required)")
	}

	return nil
}
