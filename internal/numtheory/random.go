package numtheory

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/agbru/rsacalc/internal/bigint"
	"github.com/agbru/rsacalc/internal/logging"
)

var (
	// ErrPrimeSearchExhausted is returned when MaxAttempts candidates were
	// rejected. Callers may retry with a larger budget or another seed.
	ErrPrimeSearchExhausted = errors.New("numtheory: prime search exhausted")

	// ErrInvalidDigits is returned for a requested size below one digit.
	ErrInvalidDigits = errors.New("numtheory: digit count must be positive")
)

// CandidateEvent describes one tested candidate.
type CandidateEvent struct {
	Digits  int
	Attempt int
	Prime   bool
	Elapsed time.Duration
}

// ProgressFunc receives an event for every tested candidate. It runs on the
// searching goroutine and must not block.
type ProgressFunc func(CandidateEvent)

// PrimeSearch draws random probable primes of a fixed decimal length.
//
// A PrimeSearch is not safe for concurrent use because it owns its random
// source.
type PrimeSearch struct {
	// Rand is the candidate source. A nil Rand is replaced by a
	// time-seeded generator on first use.
	Rand *rand.Rand

	// MaxAttempts bounds the number of candidates tested by one call to
	// RandomPrime. Zero means unbounded.
	MaxAttempts int

	// Logger receives "prime candidate rejected" and "prime found" events.
	Logger logging.Logger

	// OnCandidate is optional.
	OnCandidate ProgressFunc
}

// NewPrimeSearch returns a PrimeSearch with a deterministic generator
// derived from seed.
func NewPrimeSearch(seed uint64) *PrimeSearch {
	return &PrimeSearch{Rand: NewRand(seed)}
}

// NewRand returns the PCG generator used for a given seed. A zero seed
// selects a time-based one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomInt returns a uniformly drawn integer with exactly digits decimal
// digits (the leading digit is never zero).
func (s *PrimeSearch) RandomInt(digits int) (bigint.Int, error) {
	if digits < 1 {
		return bigint.Zero, ErrInvalidDigits
	}
	r := s.rng()
	buf := make([]byte, digits)
	buf[0] = byte('1' + r.IntN(9))
	for i := 1; i < digits; i++ {
		buf[i] = byte('0' + r.IntN(10))
	}
	return bigint.Parse(string(buf))
}

// RandomPrime draws odd candidates of the requested length until one passes
// IsProbablePrime. Even candidates are moved to the next odd value, which
// never changes their length.
//
// It fails with ErrPrimeSearchExhausted once MaxAttempts candidates were
// rejected, and with the context error if ctx is done between candidates.
func (s *PrimeSearch) RandomPrime(ctx context.Context, digits int) (bigint.Int, error) {
	if digits < 1 {
		return bigint.Zero, ErrInvalidDigits
	}
	logger := logging.OrNop(s.Logger)
	start := time.Now()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return bigint.Zero, err
		}
		x, err := s.RandomInt(digits)
		if err != nil {
			return bigint.Zero, err
		}
		if !x.IsOdd() {
			if x, err = x.Add(bigint.One); err != nil {
				return bigint.Zero, err
			}
		}
		prime, err := IsProbablePrime(x)
		if err != nil {
			return bigint.Zero, err
		}
		prime = prime && x.Digits() == digits

		if s.OnCandidate != nil {
			s.OnCandidate(CandidateEvent{Digits: digits, Attempt: attempt, Prime: prime, Elapsed: time.Since(start)})
		}
		if prime {
			logger.Info("prime found",
				logging.Int("digits", digits),
				logging.Int("attempts", attempt),
				logging.Duration("elapsed", time.Since(start)))
			return x, nil
		}
		logger.Debug("prime candidate rejected",
			logging.Int("digits", digits),
			logging.Int("attempt", attempt))

		if s.MaxAttempts > 0 && attempt >= s.MaxAttempts {
			logger.Error("prime search exhausted", ErrPrimeSearchExhausted,
				logging.Int("digits", digits),
				logging.Int("attempts", attempt))
			return bigint.Zero, fmt.Errorf("%w: no %d-digit prime in %d candidates",
				ErrPrimeSearchExhausted, digits, attempt)
		}
	}
}

func (s *PrimeSearch) rng() *rand.Rand {
	if s.Rand == nil {
		s.Rand = NewRand(0)
	}
	return s.Rand
}
