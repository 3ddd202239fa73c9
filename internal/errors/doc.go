// Package apperrors defines the structured error types of rsacalc and maps
// every failure class (configuration, malformed input, capacity, prime
// search exhaustion, cancellation) to a process exit code.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types that carry a cause implement Unwrap() so that errors.Is()
// reaches the sentinel errors of the core packages.
package apperrors
