// Package buffer implements the bounded FIFO buffer shared by producer and
// consumer workers, with timeout-based backpressure on both sides.
//
// # Synchronization Discipline
//
// Three primitives coordinate concurrent access:
//
//   - an exclusion gate (sync.Mutex) guarding queue mutation
//   - a free-slot counting semaphore, initialized to capacity
//   - an available-item counting semaphore, initialized to zero
//
// The semaphores are prefilled buffered channels; a token is one unit of
// capacity or one queued item. Timed acquisition is a select against a
// timer, which is what lets slot waits and item waits be bounded
// independently of queue mutation. The gate is only ever held across a
// single push or pop (plus the notification emitted for it), never across
// a wait.
//
// # Backpressure
//
// Produce acquires a slot token with a bounded per-attempt wait and
// retries without bound, emitting a full-buffer notification on every
// timeout. This is an accepted liveness risk: insertion eventually
// succeeds as consumers drain items, and producers never drop data.
//
// Consume acquires an item token within a single longer wait. On timeout
// it emits a notification and returns the NoItem sentinel; the attempt is
// abandoned, not retried. The asymmetry is deliberate: producers must not
// lose items, consumers may miss a turn.
//
// No fairness is guaranteed among blocked producers or blocked consumers
// beyond Go's channel semantics; only the queue contents themselves are
// FIFO.
//
// # Observability
//
// Statistics (atomic counters) are always collected and available via
// Stats(). Prometheus metrics are optional:
//
//	buf, err := buffer.New(capacity, notify,
//		buffer.WithMetrics(registry, "main"),
//	)
//
// Tests shorten the wait durations via WithProducerRetryDelay and
// WithConsumerMaxWait.
package buffer
