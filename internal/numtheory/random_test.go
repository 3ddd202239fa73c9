package numtheory

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/agbru/rsacalc/internal/logging"
)

func TestRandomInt_Length(t *testing.T) {
	t.Parallel()
	s := NewPrimeSearch(7)
	for digits := 1; digits <= 60; digits++ {
		x, err := s.RandomInt(digits)
		if err != nil {
			t.Fatal(err)
		}
		if x.Digits() != digits || x.Sign() <= 0 {
			t.Errorf("RandomInt(%d) = %s", digits, x)
		}
	}
	if _, err := s.RandomInt(0); !errors.Is(err, ErrInvalidDigits) {
		t.Errorf("RandomInt(0) error = %v", err)
	}
}

func TestRandomPrime_Deterministic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	a, err := NewPrimeSearch(42).RandomPrime(ctx, 20)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewPrimeSearch(42).RandomPrime(ctx, 20)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("same seed produced %s and %s", a, b)
	}
	if a.Digits() != 20 {
		t.Errorf("prime %s has %d digits, want 20", a, a.Digits())
	}
	oracle, _ := new(big.Int).SetString(a.String(), 10)
	if !oracle.ProbablyPrime(20) {
		t.Errorf("%s is not prime", a)
	}
}

func TestRandomPrime_ReportsProgress(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	var events []CandidateEvent
	s := NewPrimeSearch(99)
	s.Logger = logging.NewLogger(&buf, "numtheory")
	s.OnCandidate = func(e CandidateEvent) { events = append(events, e) }

	p, err := s.RandomPrime(context.Background(), 15)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) == 0 {
		t.Fatal("no candidate events")
	}
	last := events[len(events)-1]
	if !last.Prime || last.Attempt != len(events) || last.Digits != 15 {
		t.Errorf("last event = %+v after %d events", last, len(events))
	}
	for _, e := range events[:len(events)-1] {
		if e.Prime {
			t.Errorf("non final event reported prime: %+v", e)
		}
	}
	if !strings.Contains(buf.String(), "prime found") {
		t.Errorf("missing prime found log, got: %s", buf.String())
	}
	if ok, _ := IsProbablePrime(p); !ok {
		t.Errorf("%s failed IsProbablePrime", p)
	}
}

func TestRandomPrime_Exhausted(t *testing.T) {
	t.Parallel()
	// A 30 digit odd candidate is prime with probability below 3%, so over
	// fifty seeds a single-attempt budget is exhausted at least once.
	exhausted := 0
	for seed := uint64(1); seed <= 50; seed++ {
		calls := 0
		s := NewPrimeSearch(seed)
		s.MaxAttempts = 1
		s.OnCandidate = func(CandidateEvent) { calls++ }
		_, err := s.RandomPrime(context.Background(), 30)
		if calls != 1 {
			t.Fatalf("seed %d: %d candidates tested with MaxAttempts 1", seed, calls)
		}
		switch {
		case err == nil:
		case errors.Is(err, ErrPrimeSearchExhausted):
			exhausted++
		default:
			t.Fatalf("seed %d: unexpected error %v", seed, err)
		}
	}
	if exhausted == 0 {
		t.Error("expected at least one exhausted search")
	}
}

func TestRandomPrime_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewPrimeSearch(1).RandomPrime(ctx, 40); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if _, err := NewPrimeSearch(1).RandomPrime(context.Background(), 0); !errors.Is(err, ErrInvalidDigits) {
		t.Errorf("error = %v, want ErrInvalidDigits", err)
	}
}

func TestPrimeSearch_NilRand(t *testing.T) {
	t.Parallel()
	s := &PrimeSearch{}
	p, err := s.RandomPrime(context.Background(), 6)
	if err != nil {
		t.Fatal(err)
	}
	if s.Rand == nil || p.Digits() != 6 {
		t.Errorf("got %s, rand initialized: %v", p, s.Rand != nil)
	}
}
