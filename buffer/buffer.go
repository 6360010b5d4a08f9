package buffer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/c360/prodcon/errors"
	"github.com/c360/prodcon/sink"
)

// NoItem is the sentinel returned by Consume when no item became available
// within the abandon wait.
const NoItem = -1

// Default wait durations. Producers retry a full buffer every
// DefaultProducerRetryDelay without bound; consumers abandon a single
// attempt after DefaultConsumerMaxWait.
const (
	DefaultProducerRetryDelay = 500 * time.Millisecond
	DefaultConsumerMaxWait    = 5000 * time.Millisecond
)

// Buffer is a fixed-capacity FIFO queue of int items shared between
// producer and consumer workers.
//
// Three primitives coordinate access: a mutex gate guarding queue
// mutation, a free-slot counting semaphore and an available-item counting
// semaphore. Both semaphores support bounded-timeout acquisition, so all
// waiting happens outside the gate and the critical section is always a
// single push or pop.
//
// Invariant: slot tokens + item tokens + items in flight between an
// acquire and its matching release equal capacity, and the queue length
// read under the gate equals the number of released item tokens.
type Buffer struct {
	mu       sync.Mutex    // exclusion gate
	slots    chan struct{} // free-slot tokens, starts full
	items    chan struct{} // available-item tokens, starts empty
	queue    []int         // ring storage, guarded by mu
	head     int           // next read position
	tail     int           // next write position
	size     int           // current queue length
	capacity int

	notify  *sink.Sink
	stats   *Statistics
	metrics *bufferMetrics

	retryDelay time.Duration
	maxWait    time.Duration
}

// New creates a buffer with the given capacity. Every notification the
// buffer emits goes through notify. Returns an error for a non-positive
// capacity or when metrics registration fails.
func New(capacity int, notify *sink.Sink, options ...Option) (*Buffer, error) {
	if capacity <= 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "Buffer", "New",
			fmt.Sprintf("capacity must be positive, got %d", capacity))
	}
	if notify == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "Buffer", "New",
			"notification sink required")
	}

	opts := applyOptions(options...)

	var metrics *bufferMetrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newBufferMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "Buffer", "New", "metrics registration")
		}
	}

	b := &Buffer{
		slots:      make(chan struct{}, capacity),
		items:      make(chan struct{}, capacity),
		queue:      make([]int, capacity),
		capacity:   capacity,
		notify:     notify,
		stats:      NewStatistics(),
		metrics:    metrics,
		retryDelay: opts.retryDelay,
		maxWait:    opts.maxWait,
	}

	// The slot semaphore starts at capacity.
	for i := 0; i < capacity; i++ {
		b.slots <- struct{}{}
	}

	return b, nil
}

// acquire takes one token from ch, waiting at most timeout. Reports
// whether a token was obtained.
func acquire(ch <-chan struct{}, timeout time.Duration) bool {
	select {
	case <-ch:
		return true
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ch:
		return true
	case <-timer.C:
		return false
	}
}

// Produce inserts item into the buffer on behalf of producer workerID.
// When the buffer is full it waits up to the producer retry delay for a
// free slot, emits the full-buffer notification on each timeout, and
// retries without bound; the call returns only after the item has been
// inserted.
func (b *Buffer) Produce(workerID, item int) {
	for {
		if !acquire(b.slots, b.retryDelay) {
			b.notify.Emit(fmt.Sprintf(
				"Error de inserción - buffer lleno. El productor %d está esperando para insertar el ítem %d",
				workerID, item))
			b.stats.FullWait()
			if b.metrics != nil {
				b.metrics.recordFullWait()
			}
			continue
		}

		b.mu.Lock()
		b.queue[b.tail] = item
		b.tail = (b.tail + 1) % b.capacity
		b.size++
		size := b.size
		b.notify.Emit(fmt.Sprintf("Inserción exitosa\nProductor %d produjo: %d", workerID, item))
		b.mu.Unlock()

		b.stats.Produce()
		b.stats.UpdateSize(int64(size))
		if b.metrics != nil {
			b.metrics.recordProduce(size, b.capacity)
		}

		b.items <- struct{}{}
		return
	}
}

// Consume removes and returns the oldest item on behalf of consumer
// workerID. When no item becomes available within the consumer max wait
// it emits the timeout notification and returns NoItem; the attempt is
// not retried.
func (b *Buffer) Consume(workerID int) int {
	if !acquire(b.items, b.maxWait) {
		b.notify.Emit(fmt.Sprintf(
			"Error del consumidor %d: Buffer vacío, el consumidor esperó demasiado tiempo.",
			workerID))
		b.stats.Timeout()
		if b.metrics != nil {
			b.metrics.recordTimeout()
		}
		return NoItem
	}

	b.mu.Lock()
	item := b.queue[b.head]
	b.head = (b.head + 1) % b.capacity
	b.size--
	size := b.size
	b.notify.Emit(fmt.Sprintf("Consumidor %d consumió: %d", workerID, item))
	b.mu.Unlock()

	b.stats.Consume()
	b.stats.UpdateSize(int64(size))
	if b.metrics != nil {
		b.metrics.recordConsume(size, b.capacity)
	}

	b.slots <- struct{}{}
	return item
}

// DrainReport emits a snapshot of all items currently queued, oldest
// first, or a distinct empty-buffer message. The snapshot is taken under
// the gate into a private copy; the live queue is never mutated.
func (b *Buffer) DrainReport() {
	b.mu.Lock()
	remaining := b.snapshotLocked()

	var sb strings.Builder
	sb.WriteString("Elementos restantes en el buffer: ")
	if len(remaining) == 0 {
		sb.WriteString("El buffer está vacío.")
	} else {
		for _, item := range remaining {
			fmt.Fprintf(&sb, "%d ", item)
		}
	}
	b.notify.Emit(sb.String())
	b.mu.Unlock()
}

// snapshotLocked copies the queued items oldest first. Callers must hold
// the gate.
func (b *Buffer) snapshotLocked() []int {
	remaining := make([]int, 0, b.size)
	for i := 0; i < b.size; i++ {
		remaining = append(remaining, b.queue[(b.head+i)%b.capacity])
	}
	return remaining
}

// Snapshot returns a copy of the queued items oldest first.
func (b *Buffer) Snapshot() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Size returns the current number of queued items.
func (b *Buffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Capacity returns the maximum number of items the buffer can hold.
func (b *Buffer) Capacity() int {
	return b.capacity // immutable, no lock needed
}

// Stats returns buffer statistics (always available for observability).
func (b *Buffer) Stats() *Statistics {
	return b.stats
}
