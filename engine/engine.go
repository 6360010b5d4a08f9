package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360/prodcon/buffer"
	"github.com/c360/prodcon/config"
	"github.com/c360/prodcon/errors"
	"github.com/c360/prodcon/metric"
	"github.com/c360/prodcon/sink"
	"github.com/c360/prodcon/worker"
)

// Engine coordinates a complete producer/consumer run: it builds the shared
// buffer, launches the configured worker goroutines, waits for all of them
// to finish and emits the final drain report.
type Engine struct {
	cfg      config.Config
	notify   *sink.Sink
	logger   *slog.Logger
	registry *metric.MetricsRegistry
	metrics  *engineMetrics

	runID string

	lifecycleMu sync.Mutex
	started     bool
	finished    bool
}

// Report summarizes a finished run.
type Report struct {
	RunID     string        `json:"run_id"`
	Produced  int64         `json:"produced"`
	Consumed  int64         `json:"consumed"`
	FullWaits int64         `json:"full_waits"`
	Timeouts  int64         `json:"timeouts"`
	Remaining []int         `json:"remaining"`
	Elapsed   time.Duration `json:"elapsed"`
}

// New creates an engine for the given configuration. The sink receives every
// worker and buffer notification; registry may be nil to disable metrics.
func New(cfg config.Config, notify *sink.Sink, logger *slog.Logger,
	registry *metric.MetricsRegistry) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "engine", "New", "validate configuration")
	}
	if notify == nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("notification sink is nil"),
			"engine", "New", "checking notification sink")
	}
	if logger == nil {
		logger = slog.Default()
	}

	metrics, err := newEngineMetrics(registry)
	if err != nil {
		logger.Error("Failed to initialize engine metrics", "error", err)
		metrics = nil // Continue without metrics
	}

	return &Engine{
		cfg:      cfg,
		notify:   notify,
		logger:   logger,
		registry: registry,
		metrics:  metrics,
		runID:    uuid.NewString(),
	}, nil
}

// RunID returns the identifier assigned to this run.
func (e *Engine) RunID() string {
	return e.runID
}

// Run executes the full run and blocks until every worker has finished and
// the drain report has been emitted. An engine runs at most once.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	e.lifecycleMu.Lock()
	if e.started {
		e.lifecycleMu.Unlock()
		return nil, errors.Wrap(errors.ErrAlreadyStarted, "engine", "Run", "start run")
	}
	e.started = true
	e.lifecycleMu.Unlock()

	start := time.Now()

	options := []buffer.Option{
		buffer.WithProducerRetryDelay(e.cfg.ProducerRetryDelay),
		buffer.WithConsumerMaxWait(e.cfg.ConsumerMaxWait),
	}
	if e.registry != nil {
		options = append(options, buffer.WithMetrics(e.registry, "main"))
	}

	buf, err := buffer.New(e.cfg.Capacity, e.notify, options...)
	if err != nil {
		return nil, errors.Wrap(err, "engine", "Run", "create buffer")
	}

	var core *metric.Metrics
	if e.registry != nil {
		core = e.registry.CoreMetrics()
		core.RecordRunStatus(metric.RunRunning)
	}

	e.logger.Info("Run starting",
		"run_id", e.runID,
		"capacity", e.cfg.Capacity,
		"items_per_worker", e.cfg.ItemsPerWorker,
		"producers", e.cfg.Producers,
		"consumers", e.cfg.Consumers)

	var wg sync.WaitGroup

	producers := make([]*worker.Producer, 0, e.cfg.Producers)
	for id := 1; id <= e.cfg.Producers; id++ {
		p := worker.NewProducer(id, e.cfg.ItemsPerWorker, e.cfg.ProducerPace,
			buf, e.notify, core)
		producers = append(producers, p)

		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Run(ctx)
		}()
	}

	consumers := make([]*worker.Consumer, 0, e.cfg.Consumers)
	for id := 1; id <= e.cfg.Consumers; id++ {
		c := worker.NewConsumer(id, e.cfg.ItemsPerWorker, e.cfg.ConsumerPace,
			buf, e.notify, core)
		consumers = append(consumers, c)

		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Run(ctx)
		}()
	}

	wg.Wait()

	// All workers have joined; the buffer is quiescent from here on.
	buf.DrainReport()

	stats := buf.Stats()
	report := &Report{
		RunID:     e.runID,
		Produced:  stats.Produced(),
		Consumed:  stats.Consumed(),
		FullWaits: stats.FullWaits(),
		Timeouts:  stats.Timeouts(),
		Remaining: buf.Snapshot(),
		Elapsed:   time.Since(start),
	}

	if core != nil {
		core.RecordRunStatus(metric.RunFinished)
	}
	e.metrics.recordRun(report)

	e.lifecycleMu.Lock()
	e.finished = true
	e.lifecycleMu.Unlock()

	e.logger.Info("Run finished",
		"run_id", e.runID,
		"produced", report.Produced,
		"consumed", report.Consumed,
		"full_waits", report.FullWaits,
		"timeouts", report.Timeouts,
		"remaining", len(report.Remaining),
		"elapsed", report.Elapsed)

	return report, nil
}

// Finished reports whether the run has completed.
func (e *Engine) Finished() bool {
	e.lifecycleMu.Lock()
	defer e.lifecycleMu.Unlock()
	return e.finished
}
