// Package engine coordinates producer/consumer runs.
//
// An Engine owns the lifetime of a single run: it validates the
// configuration, creates the shared buffer, launches one goroutine per
// producer and consumer, waits for every worker to finish and then emits
// the drain report describing whatever is left in the buffer. The Report
// returned by Run carries the final counters for callers that want to
// inspect the outcome programmatically.
package engine
