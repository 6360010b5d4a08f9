// Package worker provides the fixed-count producer and consumer loops that
// drive the shared buffer.
package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/c360/prodcon/buffer"
	"github.com/c360/prodcon/metric"
	"github.com/c360/prodcon/sink"
)

// Default pacing between successive operations of a single worker.
const (
	DefaultProducerPace = 2000 * time.Millisecond
	DefaultConsumerPace = 1500 * time.Millisecond
)

// Producer inserts a fixed count of synthetic items through the buffer,
// pacing itself between insertions. Item values are id*100 + sequence
// index, unique per producer.
type Producer struct {
	id      int
	items   int
	pace    time.Duration
	buf     *buffer.Buffer
	notify  *sink.Sink
	metrics *metric.Metrics // optional

	produced int64
}

// NewProducer creates a producer worker. A non-positive pace disables
// pacing; metrics may be nil.
func NewProducer(
	id, items int, pace time.Duration,
	buf *buffer.Buffer, notify *sink.Sink, metrics *metric.Metrics,
) *Producer {
	return &Producer{
		id:      id,
		items:   items,
		pace:    pace,
		buf:     buf,
		notify:  notify,
		metrics: metrics,
	}
}

// Run executes the producer loop: creation notification, items insertions
// with pacing after each, completion notification. Produce never fails, so
// the loop always inserts exactly the configured count.
func (p *Producer) Run(ctx context.Context) {
	p.notify.Emit(fmt.Sprintf("Productor %d creado.", p.id))
	if p.metrics != nil {
		p.metrics.RecordWorkerStarted("producer")
		defer p.metrics.RecordWorkerFinished("producer")
	}

	for i := 0; i < p.items; i++ {
		item := p.id*100 + i
		p.buf.Produce(p.id, item)
		atomic.AddInt64(&p.produced, 1)
		if p.metrics != nil {
			p.metrics.RecordItemProduced(p.id)
		}
		pause(ctx, p.pace)
	}

	p.notify.Emit(fmt.Sprintf("Productor %d ha terminado.", p.id))
}

// ID returns the producer's worker id.
func (p *Producer) ID() int { return p.id }

// Produced returns the number of items inserted so far.
func (p *Producer) Produced() int64 { return atomic.LoadInt64(&p.produced) }

// Consumer removes a fixed count of items through the buffer. A consume
// attempt that times out burns its loop iteration: no retry, no pacing.
type Consumer struct {
	id      int
	items   int
	pace    time.Duration
	buf     *buffer.Buffer
	notify  *sink.Sink
	metrics *metric.Metrics // optional

	consumed int64
	missed   int64
}

// NewConsumer creates a consumer worker. A non-positive pace disables
// pacing; metrics may be nil.
func NewConsumer(
	id, items int, pace time.Duration,
	buf *buffer.Buffer, notify *sink.Sink, metrics *metric.Metrics,
) *Consumer {
	return &Consumer{
		id:      id,
		items:   items,
		pace:    pace,
		buf:     buf,
		notify:  notify,
		metrics: metrics,
	}
}

// Run executes the consumer loop: creation notification, items consume
// attempts, completion notification. Only a successful attempt is followed
// by the pacing delay.
func (c *Consumer) Run(ctx context.Context) {
	c.notify.Emit(fmt.Sprintf("Consumidor %d creado.", c.id))
	if c.metrics != nil {
		c.metrics.RecordWorkerStarted("consumer")
		defer c.metrics.RecordWorkerFinished("consumer")
	}

	for i := 0; i < c.items; i++ {
		item := c.buf.Consume(c.id)
		if item == buffer.NoItem {
			atomic.AddInt64(&c.missed, 1)
			if c.metrics != nil {
				c.metrics.RecordConsumeTimeout(c.id)
			}
			continue
		}

		atomic.AddInt64(&c.consumed, 1)
		if c.metrics != nil {
			c.metrics.RecordItemConsumed(c.id)
		}
		pause(ctx, c.pace)
	}

	c.notify.Emit(fmt.Sprintf("Consumidor %d ha terminado.", c.id))
}

// ID returns the consumer's worker id.
func (c *Consumer) ID() int { return c.id }

// Consumed returns the number of items successfully removed so far.
func (c *Consumer) Consumed() int64 { return atomic.LoadInt64(&c.consumed) }

// Missed returns the number of attempts abandoned on timeout so far.
func (c *Consumer) Missed() int64 { return atomic.LoadInt64(&c.missed) }

// pause sleeps for d, returning early if ctx is cancelled.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
