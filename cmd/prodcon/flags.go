package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/c360/prodcon/buffer"
	"github.com/c360/prodcon/sink"
	"github.com/c360/prodcon/worker"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	LogPath            string
	LogLevel           string
	LogFormat          string
	MetricsPort        int
	ProducerRetryDelay time.Duration
	ConsumerMaxWait    time.Duration
	ProducerPace       time.Duration
	ConsumerPace       time.Duration
	ShowVersion        bool
	ShowHelp           bool

	// Positional arguments left after flag parsing
	Args []string
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.LogPath, "log-path",
		getEnv("PRODCON_LOG_PATH", sink.DefaultLogPath),
		"Path to the append-only notification log (env: PRODCON_LOG_PATH)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("PRODCON_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: PRODCON_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("PRODCON_LOG_FORMAT", "text"),
		"Log format: json, text (env: PRODCON_LOG_FORMAT)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("PRODCON_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: PRODCON_METRICS_PORT)")

	flag.DurationVar(&cfg.ProducerRetryDelay, "producer-retry-delay",
		getEnvDuration("PRODCON_PRODUCER_RETRY_DELAY", buffer.DefaultProducerRetryDelay),
		"Delay between producer insert attempts on a full buffer (env: PRODCON_PRODUCER_RETRY_DELAY)")

	flag.DurationVar(&cfg.ConsumerMaxWait, "consumer-max-wait",
		getEnvDuration("PRODCON_CONSUMER_MAX_WAIT", buffer.DefaultConsumerMaxWait),
		"How long a consumer waits on an empty buffer before giving up (env: PRODCON_CONSUMER_MAX_WAIT)")

	flag.DurationVar(&cfg.ProducerPace, "producer-pace",
		getEnvDuration("PRODCON_PRODUCER_PACE", worker.DefaultProducerPace),
		"Pause after each successful insertion (env: PRODCON_PRODUCER_PACE)")

	flag.DurationVar(&cfg.ConsumerPace, "consumer-pace",
		getEnvDuration("PRODCON_CONSUMER_PACE", worker.DefaultConsumerPace),
		"Pause after each successful consumption (env: PRODCON_CONSUMER_PACE)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	cfg.Args = flag.Args()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	// Validate metrics port
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Bounded-buffer producer/consumer simulation

Usage: %s [options] <buffer_capacity> <items_per_worker> <producer_count> <consumer_count>

All four positional arguments are required and must be positive integers.

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Buffer of 5 slots, 10 items per worker, 3 producers, 2 consumers
  %s 5 10 3 2

  # Faster run with a custom notification log
  %s --producer-pace=100ms --consumer-pace=50ms --log-path=/tmp/run.txt 5 10 3 2

  # Expose Prometheus metrics while running
  %s --metrics-port=9100 5 10 3 2

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
