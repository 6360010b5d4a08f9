// Package main implements the entry point for the prodcon application,
// a bounded-buffer producer/consumer simulation with timeout-based
// backpressure and a dual console/file notification log.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/c360/prodcon/config"
	"github.com/c360/prodcon/engine"
	"github.com/c360/prodcon/metric"
	"github.com/c360/prodcon/sink"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "prodcon"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	cfg := config.Default()
	cfg.LogPath = cliCfg.LogPath
	cfg.ProducerRetryDelay = cliCfg.ProducerRetryDelay
	cfg.ConsumerMaxWait = cliCfg.ConsumerMaxWait
	cfg.ProducerPace = cliCfg.ProducerPace
	cfg.ConsumerPace = cliCfg.ConsumerPace
	cfg.MetricsPort = cliCfg.MetricsPort

	if err := cfg.ParseArgs(cliCfg.Args); err != nil {
		printUsage()
		return err
	}

	slog.Info("Starting prodcon",
		"version", Version,
		"build_time", BuildTime,
		"capacity", cfg.Capacity,
		"items_per_worker", cfg.ItemsPerWorker,
		"producers", cfg.Producers,
		"consumers", cfg.Consumers,
		"log_path", cfg.LogPath)

	notify, err := sink.Open(os.Stdout, cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open notification log: %w", err)
	}
	defer func() {
		if cerr := notify.Close(); cerr != nil {
			slog.Warn("Failed to close notification log", "error", cerr)
		}
	}()

	registry := metric.NewMetricsRegistry()
	if cfg.MetricsPort > 0 {
		server := metric.NewServer(cfg.MetricsPort, "/metrics", registry)
		go func() {
			// Start blocks while serving; it returns nil on a clean Stop.
			if serr := server.Start(); serr != nil {
				slog.Warn("Metrics server failed", "error", serr)
			}
		}()
		slog.Info("Metrics server listening", "address", server.Address())
		defer func() {
			if serr := server.Stop(); serr != nil {
				slog.Warn("Failed to stop metrics server", "error", serr)
			}
		}()
	}

	eng, err := engine.New(cfg, notify, logger, registry)
	if err != nil {
		return err
	}

	report, err := eng.Run(context.Background())
	if err != nil {
		return err
	}

	slog.Info("Run complete",
		"run_id", report.RunID,
		"produced", report.Produced,
		"consumed", report.Consumed,
		"full_waits", report.FullWaits,
		"timeouts", report.Timeouts,
		"remaining", len(report.Remaining),
		"elapsed", report.Elapsed)

	return nil
}

func printUsage() {
	_, _ = fmt.Fprintf(os.Stderr,
		"Uso: %s <capacidad del buffer> <número de ítems> <número de productores> <número de consumidores>\n",
		os.Args[0])
}
