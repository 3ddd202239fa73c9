package numtheory

import (
	"errors"

	"github.com/agbru/rsacalc/internal/bigint"
)

// ErrNegativeExponent is returned by ModPow for exponents below zero.
var ErrNegativeExponent = errors.New("numtheory: negative exponent")

// ModPow returns base^exp mod m in [0, m) by right-to-left square and
// multiply. Every product is reduced before the next one is formed, so no
// intermediate value needs more than twice the limbs of m. Moduli too large
// for that are handled through MulMod.
//
// An exponent of zero yields 1 (0 when m is 1).
func ModPow(base, exp, m bigint.Int) (bigint.Int, error) {
	if m.Sign() <= 0 {
		return bigint.Zero, ErrInvalidModulus
	}
	if exp.Sign() < 0 {
		return bigint.Zero, ErrNegativeExponent
	}
	if m.Equal(bigint.One) {
		return bigint.Zero, nil
	}
	b, err := Mod(base, m)
	if err != nil {
		return bigint.Zero, err
	}
	result := bigint.One
	for !exp.IsZero() {
		var bit uint32
		exp, bit = exp.QuoRemLimb(2)
		if bit == 1 {
			if result, err = mulReduce(result, b, m); err != nil {
				return bigint.Zero, err
			}
		}
		if exp.IsZero() {
			break
		}
		if b, err = mulReduce(b, b, m); err != nil {
			return bigint.Zero, err
		}
	}
	return result, nil
}

// mulReduce returns a·b mod m for a, b in [0, m). It multiplies then reduces
// while the product fits the engine and falls back to MulMod otherwise.
func mulReduce(a, b, m bigint.Int) (bigint.Int, error) {
	if a.Len()+b.Len() > bigint.MaxLimbs {
		return MulMod(a, b, m)
	}
	p, err := a.MulFast(b)
	if err != nil {
		return bigint.Zero, err
	}
	return p.Rem(m)
}

// MulMod returns a·b mod m in [0, m) without ever forming the full product.
// It decomposes b into bits and doubles a under the modulus, so every
// intermediate stays below 2m.
func MulMod(a, b, m bigint.Int) (bigint.Int, error) {
	if m.Sign() <= 0 {
		return bigint.Zero, ErrInvalidModulus
	}
	a, err := Mod(a, m)
	if err != nil {
		return bigint.Zero, err
	}
	b, err = Mod(b, m)
	if err != nil {
		return bigint.Zero, err
	}
	result := bigint.Zero
	for !b.IsZero() {
		var bit uint32
		b, bit = b.QuoRemLimb(2)
		if bit == 1 {
			if result, err = addReduce(result, a, m); err != nil {
				return bigint.Zero, err
			}
		}
		if a, err = addReduce(a, a, m); err != nil {
			return bigint.Zero, err
		}
	}
	return result, nil
}

// addReduce returns (a + b) mod m for a, b already in [0, m).
func addReduce(a, b, m bigint.Int) (bigint.Int, error) {
	s, err := a.Add(b)
	if err != nil {
		return bigint.Zero, err
	}
	if s.Cmp(m) >= 0 {
		return s.Sub(m)
	}
	return s, nil
}
