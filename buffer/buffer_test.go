package buffer

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prodcon/metric"
	"github.com/c360/prodcon/sink"
)

// newTestBuffer creates a buffer with short waits and a capturing sink.
// The returned bytes.Buffer must only be read after all workers joined.
func newTestBuffer(t *testing.T, capacity int, options ...Option) (*Buffer, *bytes.Buffer) {
	t.Helper()

	var console bytes.Buffer
	notify := sink.New(&console, nil)

	opts := append([]Option{
		WithProducerRetryDelay(30 * time.Millisecond),
		WithConsumerMaxWait(100 * time.Millisecond),
	}, options...)

	buf, err := New(capacity, notify, opts...)
	require.NoError(t, err)
	return buf, &console
}

func TestNewValidation(t *testing.T) {
	notify := sink.New(&bytes.Buffer{}, nil)

	_, err := New(0, notify)
	assert.Error(t, err, "zero capacity must be rejected")

	_, err = New(-3, notify)
	assert.Error(t, err, "negative capacity must be rejected")

	_, err = New(1, nil)
	assert.Error(t, err, "nil sink must be rejected")
}

func TestRoundTripFIFO(t *testing.T) {
	buf, console := newTestBuffer(t, 3)

	for _, item := range []int{5, 105, 205} {
		buf.Produce(1, item)
	}

	got := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		got = append(got, buf.Consume(1))
	}

	assert.Equal(t, []int{5, 105, 205}, got, "items must come out in insertion order")
	assert.Equal(t, 0, buf.Size())

	out := console.String()
	assert.Contains(t, out, "Productor 1 produjo: 5")
	assert.Contains(t, out, "Consumidor 1 consumió: 205")
}

func TestProducerWaitsWhenFull(t *testing.T) {
	buf, console := newTestBuffer(t, 1)

	buf.Produce(1, 100)
	require.Equal(t, 1, buf.Size())

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf.Produce(1, 101) // blocks until the consumer frees the slot
	}()

	// Let the producer time out at least once before draining.
	time.Sleep(90 * time.Millisecond)
	assert.Equal(t, 100, buf.Consume(2))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("blocked producer never completed after slot freed")
	}

	assert.GreaterOrEqual(t, buf.Stats().FullWaits(), int64(1))
	assert.Contains(t, console.String(),
		"Error de inserción - buffer lleno. El productor 1 está esperando para insertar el ítem 101")

	assert.Equal(t, 101, buf.Consume(2), "retried item must eventually be inserted")
}

func TestConsumerTimeoutReturnsSentinel(t *testing.T) {
	buf, console := newTestBuffer(t, 2)

	start := time.Now()
	got := buf.Consume(3)
	elapsed := time.Since(start)

	assert.Equal(t, NoItem, got)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond,
		"consumer must wait at least the abandon wait before giving up")
	assert.Equal(t, int64(1), buf.Stats().Timeouts())
	assert.Contains(t, console.String(),
		"Error del consumidor 3: Buffer vacío, el consumidor esperó demasiado tiempo.")
}

func TestDrainReport(t *testing.T) {
	buf, console := newTestBuffer(t, 4)

	buf.DrainReport()
	assert.Contains(t, console.String(), "Elementos restantes en el buffer: El buffer está vacío.")

	buf.Produce(1, 7)
	buf.Produce(1, 8)
	buf.DrainReport()
	assert.Contains(t, console.String(), "Elementos restantes en el buffer: 7 8 ")

	// Reporting is read-only with respect to queue contents.
	assert.Equal(t, []int{7, 8}, buf.Snapshot())
}

func TestCapacityNeverExceeded(t *testing.T) {
	const capacity = 4
	const producers = 3
	const itemsEach = 20

	buf, _ := newTestBuffer(t, capacity, WithConsumerMaxWait(500*time.Millisecond))

	var wg sync.WaitGroup
	for p := 1; p <= producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < itemsEach; i++ {
				buf.Produce(id, id*100+i)
			}
		}(p)
	}

	// Consumers keep attempting until everything produced has been
	// drained; a timed-out attempt is simply followed by another.
	var consumed int64
	for c := 1; c <= 2; c++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for atomic.LoadInt64(&consumed) < producers*itemsEach {
				if buf.Consume(id) != NoItem {
					atomic.AddInt64(&consumed, 1)
				}
			}
		}(c)
	}
	wg.Wait()

	stats := buf.Stats()
	assert.Equal(t, int64(producers*itemsEach), stats.Produced(),
		"every produced item must be inserted exactly once")
	assert.LessOrEqual(t, stats.MaxSize(), int64(capacity),
		"queue length must never exceed capacity")
	assert.GreaterOrEqual(t, stats.CurrentSize(), int64(0))
	assert.Equal(t, stats.Produced(), stats.Consumed(),
		"removals must match insertions once fully drained")
	assert.Equal(t, 0, buf.Size())
}

func TestConcurrentFIFOPairs(t *testing.T) {
	// Single producer, single consumer: consumption order must match
	// production order even under concurrency.
	buf, _ := newTestBuffer(t, 2, WithConsumerMaxWait(time.Second))

	const n = 25
	go func() {
		for i := 0; i < n; i++ {
			buf.Produce(1, 100+i)
		}
	}()

	got := make([]int, 0, n)
	for len(got) < n {
		if item := buf.Consume(1); item != NoItem {
			got = append(got, item)
		}
	}

	for i, item := range got {
		require.Equal(t, 100+i, item, "item %d out of order", i)
	}
}

func TestWithMetricsRegistersCollectors(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	notify := sink.New(&bytes.Buffer{}, nil)

	buf, err := New(2, notify, WithMetrics(registry, "main"))
	require.NoError(t, err)

	buf.Produce(1, 100)
	buf.Consume(1)

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range metricFamilies {
		names[mf.GetName()] = true
	}
	assert.True(t, names["prodcon_buffer_produced_total"])
	assert.True(t, names["prodcon_buffer_consumed_total"])
	assert.True(t, names["prodcon_buffer_size"])

	// Same prefix twice collides in the registry.
	_, err = New(2, notify, WithMetrics(registry, "main"))
	assert.Error(t, err)
}

func TestStatisticsSummary(t *testing.T) {
	buf, _ := newTestBuffer(t, 2)

	buf.Produce(1, 1)
	buf.Produce(1, 2)
	buf.Consume(1)
	buf.Consume(1)
	buf.Consume(1) // times out

	summary := buf.Stats().Summary()
	assert.Equal(t, int64(2), summary.Produced)
	assert.Equal(t, int64(2), summary.Consumed)
	assert.Equal(t, int64(1), summary.Timeouts)
	assert.Equal(t, int64(2), summary.MaxSize)
	assert.Equal(t, int64(0), summary.CurrentSize)

	buf.Stats().Reset()
	assert.Equal(t, int64(0), buf.Stats().Produced())
}

func TestRingWrapAround(t *testing.T) {
	// Exercise head/tail wrapping across several cycles.
	buf, _ := newTestBuffer(t, 3)

	next := 0
	for cycle := 0; cycle < 4; cycle++ {
		for i := 0; i < 3; i++ {
			buf.Produce(1, next+i)
		}
		for i := 0; i < 3; i++ {
			require.Equal(t, next+i, buf.Consume(1))
		}
		next += 3
	}
	assert.Equal(t, 0, buf.Size())
}
