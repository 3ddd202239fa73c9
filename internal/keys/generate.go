package keys

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agbru/rsacalc/internal/bigint"
	"github.com/agbru/rsacalc/internal/logging"
	"github.com/agbru/rsacalc/internal/numtheory"
)

// DefaultMaxKeyAttempts bounds the number of prime pairs drawn before
// Generate gives up on finding one for which e is invertible.
const DefaultMaxKeyAttempts = 16

var (
	// ErrKeyDerivationFailed is returned when no drawn prime pair admitted
	// an inverse of e modulo φ(n).
	ErrKeyDerivationFailed = errors.New("keys: key derivation failed")

	// ErrInvalidSize is returned for a modulus size outside
	// [MinDigits, MaxDigits].
	ErrInvalidSize = errors.New("keys: invalid modulus size")
)

// Generator draws RSA key pairs.
type Generator struct {
	// Search supplies the primes. It must not be nil.
	Search *numtheory.PrimeSearch

	// MaxKeyAttempts bounds regeneration when e has no inverse modulo φ(n)
	// or the two primes coincide. Zero selects DefaultMaxKeyAttempts.
	MaxKeyAttempts int

	Logger logging.Logger
}

// NewGenerator returns a Generator whose primes come from a PCG generator
// seeded with seed (0 selects a time-based seed).
func NewGenerator(seed uint64, logger logging.Logger) *Generator {
	search := numtheory.NewPrimeSearch(seed)
	search.Logger = logger
	return &Generator{Search: search, Logger: logger}
}

// Generate produces a key pair for a modulus of roughly digits decimal
// digits.
//
// Parameters:
//   - ctx: Cancels the prime search between candidates.
//   - digits: Requested modulus size, in [MinDigits, MaxDigits].
//
// Returns:
//   - Pair: The public key, the secret key and the primes p and q.
//   - error: ErrInvalidSize, ErrKeyDerivationFailed, or an error from the
//     prime search (numtheory.ErrPrimeSearchExhausted, a context error).
func (g *Generator) Generate(ctx context.Context, digits int) (Pair, error) {
	if digits < MinDigits || digits > MaxDigits {
		return Pair{}, fmt.Errorf("%w: %d digits, want %d..%d", ErrInvalidSize, digits, MinDigits, MaxDigits)
	}
	logger := logging.OrNop(g.Logger)
	maxAttempts := g.MaxKeyAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxKeyAttempts
	}
	pSize := digits / 2
	qSize := digits - pSize
	start := time.Now()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		p, err := g.Search.RandomPrime(ctx, pSize)
		if err != nil {
			return Pair{}, err
		}
		q, err := g.Search.RandomPrime(ctx, qSize)
		if err != nil {
			return Pair{}, err
		}
		if p.Equal(q) {
			logger.Info("key derivation failed, regenerating",
				logging.Int("attempt", attempt),
				logging.String("reason", "p equals q"))
			continue
		}

		pair, err := derive(p, q, digits)
		if errors.Is(err, numtheory.ErrNotInvertible) {
			logger.Info("key derivation failed, regenerating",
				logging.Int("attempt", attempt),
				logging.String("reason", "e is not invertible modulo phi(n)"))
			continue
		}
		if err != nil {
			return Pair{}, err
		}
		logger.Info("key pair generated",
			logging.Int("digits", digits),
			logging.Int("modulus_digits", pair.Public.N.Digits()),
			logging.Int("fragment_size", pair.Public.FragmentSize),
			logging.Int("encrypt_fragment_size", pair.Public.EncryptFragmentSize),
			logging.Int("attempts", attempt),
			logging.Duration("elapsed", time.Since(start)))
		return pair, nil
	}
	return Pair{}, fmt.Errorf("%w: after %d prime pairs", ErrKeyDerivationFailed, maxAttempts)
}

// Derive builds a key pair from two distinct primes, computing n, φ(n), the
// private exponent and the block sizing for a modulus requested with digits
// digits.
func Derive(p, q bigint.Int, digits int) (Pair, error) {
	pair, err := derive(p, q, digits)
	if errors.Is(err, numtheory.ErrNotInvertible) {
		return Pair{}, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}
	return pair, err
}

func derive(p, q bigint.Int, digits int) (Pair, error) {
	n, err := p.MulFast(q)
	if err != nil {
		return Pair{}, err
	}
	p1, err := p.Sub(bigint.One)
	if err != nil {
		return Pair{}, err
	}
	q1, err := q.Sub(bigint.One)
	if err != nil {
		return Pair{}, err
	}
	phi, err := p1.MulFast(q1)
	if err != nil {
		return Pair{}, err
	}
	e := bigint.New(PublicExponent)
	d, err := numtheory.ModInverse(e, phi)
	if err != nil {
		return Pair{}, err
	}

	params := Params{
		N:                   n,
		FragmentSize:        FragmentSize(digits, n),
		EncryptFragmentSize: RadixDigits(n, ByteRadix),
		EncryptByteVal:      ByteRadix,
	}
	if params.FragmentSize == 0 {
		return Pair{}, fmt.Errorf("%w: modulus %s cannot hold a single byte", ErrInvalidSize, n)
	}
	return Pair{
		Public: PublicKey{E: e, Params: params},
		Secret: SecretKey{D: d, Params: params},
		P:      p,
		Q:      q,
	}, nil
}

// Generate is a convenience wrapper around NewGenerator(seed, nil).Generate.
func Generate(ctx context.Context, digits int, seed uint64) (Pair, error) {
	return NewGenerator(seed, nil).Generate(ctx, digits)
}
