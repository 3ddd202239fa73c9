package app

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/rsacalc/internal/cli"
	apperrors "github.com/agbru/rsacalc/internal/errors"
	"github.com/agbru/rsacalc/internal/keys"
	"github.com/agbru/rsacalc/internal/numtheory"
)

// runKeygen generates a key pair and writes the two key files.
func (a *Application) runKeygen(ctx context.Context, out io.Writer) (err error) {
	cfg := a.Config
	ctx, span := tracer.Start(ctx, "rsacalc.keygen")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(
		attribute.Int("rsacalc.digits", cfg.Digits),
		attribute.Int("rsacalc.max_attempts", cfg.MaxAttempts),
	)

	gen := keys.NewGenerator(cfg.Seed, a.Logger)
	gen.MaxKeyAttempts = cfg.MaxKeyAttempts
	gen.Search.MaxAttempts = cfg.MaxAttempts

	var progress *cli.PrimeSearchProgress
	if !cfg.Quiet {
		progress = cli.NewPrimeSearchProgress(a.newSpinner())
	}
	gen.Search.OnCandidate = func(ev numtheory.CandidateEvent) {
		a.Metrics.ObserveCandidate(ev)
		if progress != nil {
			progress.Observe(ev)
		}
	}

	start := time.Now()
	pair, err := gen.Generate(ctx, cfg.Digits)
	elapsed := time.Since(start)
	a.Metrics.ObserveKeygen(elapsed, err)
	candidates := 0
	if progress != nil {
		candidates = progress.Stop()
	}
	if err != nil {
		return apperrors.CalculationError{Operation: "keygen", Cause: err}
	}
	span.SetAttributes(attribute.Int("rsacalc.modulus_digits", pair.Public.N.Digits()))

	if err := keys.SavePublic(cfg.PublicKeyPath, pair.Public); err != nil {
		return err
	}
	if err := keys.SaveSecret(cfg.SecretKeyPath, pair.Secret); err != nil {
		return err
	}

	if !cfg.Quiet {
		cli.DisplayKeySummary(out, cli.KeySummary{
			Pair:          pair,
			PublicPath:    cfg.PublicKeyPath,
			SecretPath:    cfg.SecretKeyPath,
			Duration:      elapsed,
			Candidates:    candidates,
			RequestedSize: cfg.Digits,
		}, cfg.Verbose)
	}
	return nil
}
