package buffer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks buffer activity. It is always collected; Prometheus
// metrics are the optional layer on top.
type Statistics struct {
	// Atomic counters for thread-safe updates
	produced  int64
	consumed  int64
	fullWaits int64
	timeouts  int64

	// Protected by mutex
	mu          sync.RWMutex
	startTime   time.Time
	currentSize int64
	maxSize     int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Produce records a successful insertion.
func (s *Statistics) Produce() {
	atomic.AddInt64(&s.produced, 1)
}

// Consume records a successful removal.
func (s *Statistics) Consume() {
	atomic.AddInt64(&s.consumed, 1)
}

// FullWait records a producer slot-wait timeout.
func (s *Statistics) FullWait() {
	atomic.AddInt64(&s.fullWaits, 1)
}

// Timeout records an abandoned consume attempt.
func (s *Statistics) Timeout() {
	atomic.AddInt64(&s.timeouts, 1)
}

// UpdateSize updates the current buffer size.
func (s *Statistics) UpdateSize(size int64) {
	s.mu.Lock()
	s.currentSize = size
	if size > s.maxSize {
		s.maxSize = size
	}
	s.mu.Unlock()
}

// Produced returns the total number of successful insertions.
func (s *Statistics) Produced() int64 {
	return atomic.LoadInt64(&s.produced)
}

// Consumed returns the total number of successful removals.
func (s *Statistics) Consumed() int64 {
	return atomic.LoadInt64(&s.consumed)
}

// FullWaits returns the total number of producer slot-wait timeouts.
func (s *Statistics) FullWaits() int64 {
	return atomic.LoadInt64(&s.fullWaits)
}

// Timeouts returns the total number of abandoned consume attempts.
func (s *Statistics) Timeouts() int64 {
	return atomic.LoadInt64(&s.timeouts)
}

// CurrentSize returns the queue length after the most recent operation.
func (s *Statistics) CurrentSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentSize
}

// MaxSize returns the largest queue length observed.
func (s *Statistics) MaxSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxSize
}

// Utilization returns the current buffer utilization as a percentage (0.0 to 1.0).
func (s *Statistics) Utilization(capacity int64) float64 {
	if capacity == 0 {
		return 0.0
	}

	currentSize := s.CurrentSize()
	return float64(currentSize) / float64(capacity)
}

// Uptime returns how long the buffer has been running.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.produced, 0)
	atomic.StoreInt64(&s.consumed, 0)
	atomic.StoreInt64(&s.fullWaits, 0)
	atomic.StoreInt64(&s.timeouts, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.currentSize = 0
	s.maxSize = 0
	s.mu.Unlock()
}

// StatsSummary is a snapshot of all statistics.
type StatsSummary struct {
	Produced    int64         `json:"produced"`
	Consumed    int64         `json:"consumed"`
	FullWaits   int64         `json:"full_waits"`
	Timeouts    int64         `json:"timeouts"`
	CurrentSize int64         `json:"current_size"`
	MaxSize     int64         `json:"max_size"`
	Uptime      time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Produced:    s.Produced(),
		Consumed:    s.Consumed(),
		FullWaits:   s.FullWaits(),
		Timeouts:    s.Timeouts(),
		CurrentSize: s.CurrentSize(),
		MaxSize:     s.MaxSize(),
		Uptime:      s.Uptime(),
	}
}
