package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/rsacalc/internal/bigint"
	"github.com/agbru/rsacalc/internal/codec"
	"github.com/agbru/rsacalc/internal/keys"
	"github.com/agbru/rsacalc/internal/numtheory"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess          = 0   // Indicates successful execution.
	ExitErrorGeneric     = 1   // Indicates a generic error.
	ExitErrorTimeout     = 2   // Indicates the operation timed out.
	ExitErrorConfig      = 4   // Indicates a configuration error.
	ExitErrorCapacity    = 5   // Indicates a value outgrew the engine capacity.
	ExitErrorMalformed   = 6   // Indicates a malformed key, ciphertext or base64 input.
	ExitErrorPrimeSearch = 7   // Indicates the prime search budget was exhausted.
	ExitErrorCanceled    = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure of key generation, encryption or
// decryption while preserving the original cause.
type CalculationError struct {
	// Operation is "keygen", "encrypt" or "decrypt".
	Operation string
	Cause     error
}

func (e CalculationError) Error() string {
	if e.Operation == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation that exceeded its time limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure on a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MalformedInputError reports input that could not be parsed: a key file, a
// ciphertext buffer or its base64 text. No partial result accompanies it.
type MalformedInputError struct {
	// Source names the input, for example a file path or "stdin".
	Source string
	Cause  error
}

func (e MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %s: %v", e.Source, e.Cause)
}

func (e MalformedInputError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsMalformed reports whether err stems from unparseable input, either
// explicitly wrapped in a MalformedInputError or carrying one of the core
// parse sentinels.
func IsMalformed(err error) bool {
	var mi MalformedInputError
	return errors.As(err, &mi) ||
		errors.Is(err, keys.ErrMalformedKey) ||
		errors.Is(err, codec.ErrMalformedCiphertext) ||
		errors.Is(err, bigint.ErrSyntax)
}

// ExitCode maps an error to the process exit status.
//
// Parameters:
//   - err: The error returned by a command, possibly nil.
//
// Returns:
//   - int: ExitSuccess for nil, otherwise the most specific exit code.
func ExitCode(err error) int {
	var (
		cfgErr     ConfigError
		valErr     ValidationError
		timeoutErr TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case IsContextError(err):
		if errors.Is(err, context.DeadlineExceeded) {
			return ExitErrorTimeout
		}
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &valErr), errors.Is(err, keys.ErrInvalidSize):
		return ExitErrorConfig
	case errors.Is(err, bigint.ErrCapacityExceeded):
		return ExitErrorCapacity
	case IsMalformed(err):
		return ExitErrorMalformed
	case errors.Is(err, numtheory.ErrPrimeSearchExhausted):
		return ExitErrorPrimeSearch
	default:
		return ExitErrorGeneric
	}
}

// HandleError writes a one-line description of err to out and returns its
// exit code. Nothing is written for a nil error.
func HandleError(err error, out io.Writer) int {
	code := ExitCode(err)
	switch code {
	case ExitSuccess:
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Error: operation timed out: %v\n", err)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "Operation canceled.\n")
	case ExitErrorCapacity:
		fmt.Fprintf(out, "Error: %v (choose a smaller key size)\n", err)
	case ExitErrorPrimeSearch:
		fmt.Fprintf(out, "Error: %v (retry with a larger -max-attempts or another -seed)\n", err)
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return code
}
