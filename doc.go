// Package prodcon implements a bounded, multi-producer/multi-consumer
// shared buffer with timeout-based backpressure, plus the workers and
// coordinator that exercise it.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│           Engine                    │  Spawns workers, joins them,
//	│  (coordinator, run lifecycle)       │  triggers the drain report
//	└─────────────────────────────────────┘
//	           ↓ drives
//	┌─────────────────────────────────────┐
//	│          Workers                    │  Producers insert N items each,
//	│   (producer, consumer loops)        │  consumers remove N items each
//	└─────────────────────────────────────┘
//	           ↓ call into
//	┌─────────────────────────────────────┐
//	│          Buffer                     │  Mutex gate + slot/item counting
//	│  (FIFO queue, timed acquisition)    │  semaphores, timed waits
//	└─────────────────────────────────────┘
//
// The buffer is the only non-trivial piece: a fixed-capacity FIFO queue
// guarded by a mutual-exclusion gate, with free-slot and available-item
// counting semaphores that support bounded-timeout acquisition. Producers
// that find the buffer full wait a bounded interval and retry without
// bound; consumers that find it empty abandon the attempt after a maximum
// wait and report a sentinel value.
//
// Every operation emits a human-readable notification line through a
// serialized sink that writes the same text to the console and to an
// append-mode log file.
//
// Packages:
//   - buffer: the bounded buffer and its synchronization discipline
//   - worker: fixed-count producer and consumer loops
//   - engine: run coordination and reporting
//   - sink: dual-destination serialized notification output
//   - config: run parameters and validation
//   - metric: Prometheus registry and core metrics
//   - errors: error classification and wrapping helpers
package prodcon
