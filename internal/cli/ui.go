package cli

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/rsacalc/internal/format"
	"github.com/agbru/rsacalc/internal/numtheory"
)

const (
	// TruncationLimit is the digit count from which moduli are truncated in
	// the key summary.
	TruncationLimit = 60
	// DisplayEdges is the number of digits kept at each end of a truncated
	// modulus.
	DisplayEdges = 20
	// SpinnerRefreshRate is the spinner animation interval.
	SpinnerRefreshRate = 100 * time.Millisecond
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It lets the key generation progress be tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix takes the spinner lock because the animation goroutine reads
// Suffix on every frame.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// NewSpinner returns a terminal spinner writing to stderr.
func NewSpinner() Spinner {
	return newSpinner(spinner.WithWriter(os.Stderr), spinner.WithHiddenCursor(true))
}

// PrimeSearchProgress renders prime search events on a Spinner. Its
// Observe method is a numtheory.ProgressFunc.
type PrimeSearchProgress struct {
	mu      sync.Mutex
	spinner Spinner
	tested  int
	found   int
}

// NewPrimeSearchProgress starts s and returns a progress sink for it.
func NewPrimeSearchProgress(s Spinner) *PrimeSearchProgress {
	s.UpdateSuffix(" Searching for primes...")
	s.Start()
	return &PrimeSearchProgress{spinner: s}
}

// Observe records one candidate and refreshes the spinner text.
func (p *PrimeSearchProgress) Observe(ev numtheory.CandidateEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tested++
	if ev.Prime {
		p.found++
	}
	p.spinner.UpdateSuffix(FormatSearchStatus(ev, p.found, p.tested))
}

// Stop halts the spinner and returns the number of candidates tested.
func (p *PrimeSearchProgress) Stop() int {
	p.spinner.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tested
}

// FormatSearchStatus renders the spinner suffix for a candidate event.
func FormatSearchStatus(ev numtheory.CandidateEvent, found, tested int) string {
	return fmt.Sprintf(" Searching for a %d-digit prime: attempt %d, %d prime(s) found, %s candidates tested (%s)",
		ev.Digits, ev.Attempt, found, format.FormatNumberString(fmt.Sprint(tested)),
		format.FormatExecutionDuration(ev.Elapsed))
}
