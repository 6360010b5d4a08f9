// Package errors provides standardized error handling patterns for prodcon.
//
// # Overview
//
// The package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable),
// and Fatal (unrecoverable, stop processing).
//
// For this program the taxonomy is deliberately small. Invalid
// configuration is fatal and reported before any concurrency starts. A
// producer's slot-wait timeout and a consumer's item-wait timeout are both
// transient: the producer retries without bound, the consumer abandons the
// single attempt and moves on.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// The generic Wrap() preserves the original error's classification.
//
// All classification and wrapping operations are thread-safe, and every
// error type supports errors.Is, errors.As and unwrapping chains.
package errors
