// Package sink provides the serialized notification sink that every core
// operation emits through: one line in, the same text out on the console
// and in an append-mode log file.
package sink

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/c360/prodcon/errors"
)

// DefaultLogPath is the flat log file accumulating run output.
const DefaultLogPath = "producer-consumer.txt"

// Sink writes notification lines to two destinations. Emit is atomic with
// respect to concurrent callers: lines from different workers never
// interleave character-by-character.
type Sink struct {
	mu      sync.Mutex
	console io.Writer
	file    io.Writer
	closer  io.Closer // non-nil when the sink owns the log file handle
	logger  *slog.Logger
	closed  bool

	// Metrics
	linesWritten int64
	bytesWritten int64
	writeErrors  int64
}

// New creates a sink over the given writers. Neither writer is closed by
// Close; use Open when the sink should own the log file handle.
func New(console, file io.Writer) *Sink {
	return &Sink{
		console: console,
		file:    file,
		logger:  slog.Default(),
	}
}

// Open creates a sink writing to console and to an append-mode log file at
// path, creating the file if needed. The returned sink owns the file
// handle and closes it on Close.
func Open(console io.Writer, path string) (*Sink, error) {
	if path == "" {
		path = DefaultLogPath
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.WrapFatal(err, "Sink", "Open", "open log file")
	}

	s := New(console, f)
	s.closer = f
	return s, nil
}

// Emit writes line to both destinations, appending a newline when the line
// does not already end with one. Log-file write failures are counted and
// logged, never returned: output durability is best-effort by design.
func (s *Sink) Emit(line string) {
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line += "\n"
	}
	data := []byte(line)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		atomic.AddInt64(&s.writeErrors, 1)
		return
	}

	if s.console != nil {
		if _, err := s.console.Write(data); err != nil {
			atomic.AddInt64(&s.writeErrors, 1)
		}
	}

	if s.file != nil {
		n, err := s.file.Write(data)
		if err != nil {
			atomic.AddInt64(&s.writeErrors, 1)
			s.logger.Warn("Failed to write notification to log file",
				"component", "sink",
				"error", err)
		} else {
			atomic.AddInt64(&s.bytesWritten, int64(n))
		}
	}

	atomic.AddInt64(&s.linesWritten, 1)
}

// Close closes the log file handle when the sink owns one. Further Emit
// calls are dropped and counted as write errors.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.WrapInvalid(errors.ErrSinkClosed, "Sink", "Close", "already closed")
	}
	s.closed = true

	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			return errors.WrapTransient(err, "Sink", "Close", "close log file")
		}
	}
	return nil
}

// Stats returns a snapshot of sink counters.
func (s *Sink) Stats() Stats {
	return Stats{
		LinesWritten: atomic.LoadInt64(&s.linesWritten),
		BytesWritten: atomic.LoadInt64(&s.bytesWritten),
		WriteErrors:  atomic.LoadInt64(&s.writeErrors),
	}
}

// Stats holds sink counters.
type Stats struct {
	LinesWritten int64 `json:"lines_written"`
	BytesWritten int64 `json:"bytes_written"`
	WriteErrors  int64 `json:"write_errors"`
}
