// Package apperrors provides tests for application error types.
package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/agbru/rsacalc/internal/bigint"
	"github.com/agbru/rsacalc/internal/codec"
	"github.com/agbru/rsacalc/internal/keys"
	"github.com/agbru/rsacalc/internal/numtheory"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"config", NewConfigError("invalid value %d for flag %s", 3, "-digits"), "invalid value 3 for flag -digits"},
		{"calculation with operation", CalculationError{Operation: "keygen", Cause: errors.New("boom")}, "keygen: boom"},
		{"calculation without operation", CalculationError{Cause: errors.New("boom")}, "boom"},
		{"timeout", TimeoutError{Operation: "decrypt", Limit: 2 * time.Second}, `operation "decrypt" timed out after 2s`},
		{"validation", ValidationError{Field: "digits", Message: "must be at least 5"}, `validation error for "digits": must be at least 5`},
		{"malformed", MalformedInputError{Source: "sk.txt", Cause: errors.New("bad field")}, "malformed input sk.txt: bad field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestUnwrapReachesSentinels(t *testing.T) {
	t.Parallel()
	calc := fmt.Errorf("outer: %w", CalculationError{Operation: "encrypt", Cause: bigint.ErrCapacityExceeded})
	if !errors.Is(calc, bigint.ErrCapacityExceeded) {
		t.Error("CalculationError should unwrap to its cause")
	}
	var ce CalculationError
	if !errors.As(calc, &ce) || ce.Operation != "encrypt" {
		t.Errorf("errors.As failed: %+v", ce)
	}

	mal := MalformedInputError{Source: "stdin", Cause: codec.ErrMalformedBase64}
	if !errors.Is(mal, codec.ErrMalformedCiphertext) {
		t.Error("MalformedInputError should unwrap to its cause")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	err := WrapError(os.ErrNotExist, "loading %s", "pk.txt")
	if err.Error() != "loading pk.txt: file does not exist" {
		t.Errorf("unexpected message %q", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("wrapped error should match its cause")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err      error
		expected bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("wrapped: %w", context.Canceled), true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.expected {
			t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("x"), ExitErrorGeneric},
		{"timeout type", TimeoutError{Operation: "keygen", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", fmt.Errorf("search: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"canceled keygen", CalculationError{Operation: "keygen", Cause: context.Canceled}, ExitErrorCanceled},
		{"deadline in decrypt", CalculationError{Operation: "decrypt", Cause: context.DeadlineExceeded}, ExitErrorTimeout},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"validation", ValidationError{Field: "digits"}, ExitErrorConfig},
		{"invalid key size", fmt.Errorf("gen: %w", keys.ErrInvalidSize), ExitErrorConfig},
		{"capacity", CalculationError{Cause: bigint.ErrCapacityExceeded}, ExitErrorCapacity},
		{"malformed wrapper", MalformedInputError{Source: "x", Cause: errors.New("y")}, ExitErrorMalformed},
		{"malformed key", fmt.Errorf("pk.txt: %w", keys.ErrMalformedKey), ExitErrorMalformed},
		{"malformed ciphertext", codec.ErrMalformedCiphertext, ExitErrorMalformed},
		{"bad decimal", bigint.ErrSyntax, ExitErrorMalformed},
		{"prime search", fmt.Errorf("p: %w", numtheory.ErrPrimeSearchExhausted), ExitErrorPrimeSearch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if code := HandleError(nil, &buf); code != ExitSuccess || buf.Len() != 0 {
		t.Errorf("HandleError(nil) = %d, output %q", code, buf.String())
	}

	buf.Reset()
	code := HandleError(numtheory.ErrPrimeSearchExhausted, &buf)
	if code != ExitErrorPrimeSearch || !strings.Contains(buf.String(), "-max-attempts") {
		t.Errorf("HandleError = %d, output %q", code, buf.String())
	}

	buf.Reset()
	if code := HandleError(context.Canceled, &buf); code != ExitErrorCanceled || !strings.Contains(buf.String(), "canceled") {
		t.Errorf("HandleError(canceled) = %d, output %q", code, buf.String())
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":          ExitSuccess,
		"ExitErrorGeneric":     ExitErrorGeneric,
		"ExitErrorTimeout":     ExitErrorTimeout,
		"ExitErrorConfig":      ExitErrorConfig,
		"ExitErrorCapacity":    ExitErrorCapacity,
		"ExitErrorMalformed":   ExitErrorMalformed,
		"ExitErrorPrimeSearch": ExitErrorPrimeSearch,
		"ExitErrorCanceled":    ExitErrorCanceled,
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}
	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
