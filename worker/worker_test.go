package worker

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prodcon/buffer"
	"github.com/c360/prodcon/sink"
)

func newTestSetup(t *testing.T, capacity int, opts ...buffer.Option) (*buffer.Buffer, *sink.Sink, *bytes.Buffer) {
	t.Helper()

	var console bytes.Buffer
	notify := sink.New(&console, nil)

	all := append([]buffer.Option{
		buffer.WithProducerRetryDelay(30 * time.Millisecond),
		buffer.WithConsumerMaxWait(80 * time.Millisecond),
	}, opts...)

	buf, err := buffer.New(capacity, notify, all...)
	require.NoError(t, err)
	return buf, notify, &console
}

func TestProducerRunInsertsAllItems(t *testing.T) {
	buf, notify, console := newTestSetup(t, 10)

	p := NewProducer(2, 3, 0, buf, notify, nil)
	p.Run(context.Background())

	assert.Equal(t, int64(3), p.Produced())
	assert.Equal(t, []int{200, 201, 202}, buf.Snapshot(),
		"items must be id*100+i in sequence order")

	out := console.String()
	assert.Contains(t, out, "Productor 2 creado.")
	assert.Contains(t, out, "Productor 2 produjo: 200")
	assert.Contains(t, out, "Productor 2 ha terminado.")

	created := strings.Index(out, "Productor 2 creado.")
	finished := strings.Index(out, "Productor 2 ha terminado.")
	assert.Less(t, created, finished, "creation must be notified before completion")
}

func TestConsumerRunDrainsItems(t *testing.T) {
	buf, notify, console := newTestSetup(t, 10)
	for i := 0; i < 3; i++ {
		buf.Produce(1, 100+i)
	}

	c := NewConsumer(4, 3, 0, buf, notify, nil)
	c.Run(context.Background())

	assert.Equal(t, int64(3), c.Consumed())
	assert.Equal(t, int64(0), c.Missed())
	assert.Equal(t, 0, buf.Size())

	out := console.String()
	assert.Contains(t, out, "Consumidor 4 creado.")
	assert.Contains(t, out, "Consumidor 4 consumió: 100")
	assert.Contains(t, out, "Consumidor 4 ha terminado.")
}

func TestConsumerTimeoutBurnsIterationWithoutRetry(t *testing.T) {
	buf, notify, console := newTestSetup(t, 4)
	buf.Produce(1, 100)

	// Three attempts against one available item: one success, two misses.
	c := NewConsumer(1, 3, 200*time.Millisecond, buf, notify, nil)

	start := time.Now()
	c.Run(context.Background())
	elapsed := time.Since(start)

	assert.Equal(t, int64(1), c.Consumed())
	assert.Equal(t, int64(2), c.Missed())
	assert.Contains(t, console.String(),
		"Error del consumidor 1: Buffer vacío, el consumidor esperó demasiado tiempo.")

	// One pacing delay (after the success) plus two abandon waits; if a
	// missed attempt also paced, the run would take one pace longer.
	assert.Less(t, elapsed, 200*time.Millisecond+2*80*time.Millisecond+150*time.Millisecond,
		"timed-out attempts must not contribute pacing delay")
}

func TestProducerPacingBetweenInsertions(t *testing.T) {
	buf, notify, _ := newTestSetup(t, 10)

	p := NewProducer(1, 3, 50*time.Millisecond, buf, notify, nil)

	start := time.Now()
	p.Run(context.Background())
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 150*time.Millisecond,
		"producer must pace between successive insertions")
}

func TestPauseReturnsEarlyOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	pause(ctx, time.Second)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
