package app

import (
	"context"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/rsacalc/internal/cli"
	"github.com/agbru/rsacalc/internal/codec"
	apperrors "github.com/agbru/rsacalc/internal/errors"
	"github.com/agbru/rsacalc/internal/keys"
	"github.com/agbru/rsacalc/internal/logging"
)

// runEncrypt encrypts the input with the public key in -key.
func (a *Application) runEncrypt(ctx context.Context, out io.Writer) (err error) {
	cfg := a.Config
	pk, err := keys.LoadPublic(cfg.KeyPath)
	if err != nil {
		return err
	}
	input, source, err := a.readInput()
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "rsacalc.encrypt")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(
		attribute.Int("rsacalc.input_bytes", len(input)),
		attribute.Int("rsacalc.workers", cfg.Workers),
	)

	start := time.Now()
	ct, err := a.codec().Encrypt(ctx, input, pk)
	elapsed := time.Since(start)
	a.Metrics.ObserveCodec(codec.DirectionEncrypt, elapsed, err)
	if err != nil {
		return apperrors.CalculationError{Operation: "encrypt", Cause: err}
	}
	a.Logger.Debug("encrypted", logging.String("source", source), logging.Int("bytes", len(ct)))

	result, text := ct, false
	if cfg.Base64 {
		result, text = []byte(codec.EncodeBase64(ct)), true
	}
	if err := cli.DisplayResult(out, result, a.outputConfig(text)); err != nil {
		return err
	}
	a.displayStats("encrypt", len(input), len(result), codec.BlockCount(len(input), pk.Params), elapsed)
	return nil
}

// runDecrypt decrypts the input with the secret key in -key.
func (a *Application) runDecrypt(ctx context.Context, out io.Writer) (err error) {
	cfg := a.Config
	sk, err := keys.LoadSecret(cfg.KeyPath)
	if err != nil {
		return err
	}
	input, source, err := a.readInput()
	if err != nil {
		return err
	}
	ct := input
	if cfg.Base64 {
		if ct, err = codec.DecodeBase64(string(input)); err != nil {
			return apperrors.MalformedInputError{Source: source, Cause: err}
		}
	}

	ctx, span := tracer.Start(ctx, "rsacalc.decrypt")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(
		attribute.Int("rsacalc.ciphertext_bytes", len(ct)),
		attribute.Int("rsacalc.workers", cfg.Workers),
	)

	start := time.Now()
	pt, err := a.codec().Decrypt(ctx, ct, sk)
	elapsed := time.Since(start)
	a.Metrics.ObserveCodec(codec.DirectionDecrypt, elapsed, err)
	if err != nil {
		return apperrors.CalculationError{Operation: "decrypt", Cause: apperrors.WrapError(err, "reading %s", source)}
	}

	if err := cli.DisplayResult(out, pt, a.outputConfig(false)); err != nil {
		return err
	}
	blocks := 0
	if sk.EncryptFragmentSize > 0 {
		blocks = len(ct) / sk.EncryptFragmentSize
	}
	a.displayStats("decrypt", len(input), len(pt), blocks, elapsed)
	return nil
}

// readInput returns the payload and a name for it used in error messages.
// The payload is, in order of precedence, the file named by -in with
// -in-file, the literal -in value (or positional argument), or stdin.
func (a *Application) readInput() ([]byte, string, error) {
	cfg := a.Config
	switch {
	case cfg.InputIsPath:
		data, err := os.ReadFile(cfg.Input)
		if err != nil {
			return nil, cfg.Input, apperrors.WrapError(err, "failed to read input")
		}
		return data, cfg.Input, nil
	case cfg.Input != "":
		return []byte(cfg.Input), "argument", nil
	default:
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return nil, "stdin", apperrors.WrapError(err, "failed to read stdin")
		}
		return data, "stdin", nil
	}
}

func (a *Application) codec() *codec.Codec {
	return &codec.Codec{
		Workers: a.Config.Workers,
		OnBlock: a.Metrics.ObserveBlock,
		Logger:  a.Logger,
	}
}

func (a *Application) outputConfig(text bool) cli.OutputConfig {
	oc := cli.OutputConfig{Quiet: a.Config.Quiet, Text: text}
	if a.Config.OutputIsPath {
		oc.OutputFile = a.Config.Output
	}
	return oc
}

func (a *Application) displayStats(op string, in, out, blocks int, elapsed time.Duration) {
	if !a.Config.Verbose || a.Config.Quiet {
		return
	}
	cli.DisplayCryptStats(a.ErrWriter, cli.CryptStats{
		Operation:   op,
		InputBytes:  in,
		OutputBytes: out,
		Blocks:      blocks,
		Duration:    elapsed,
	})
}
