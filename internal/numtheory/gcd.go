package numtheory

import (
	"errors"
	"fmt"

	"github.com/agbru/rsacalc/internal/bigint"
)

var (
	// ErrNotInvertible is returned by ModInverse when gcd(a, m) != 1.
	ErrNotInvertible = errors.New("numtheory: value is not invertible")

	// ErrInvalidModulus is returned when a modulus is not strictly positive.
	ErrInvalidModulus = errors.New("numtheory: modulus must be positive")
)

// ExtGCD returns g = gcd(a, b) together with Bézout coefficients x, y such
// that a·x + b·y = g. The recursion depth is bounded by the number of
// Euclidean steps, which is logarithmic in min(|a|, |b|).
func ExtGCD(a, b bigint.Int) (g, x, y bigint.Int, err error) {
	if b.IsZero() {
		return a, bigint.One, bigint.Zero, nil
	}
	q, r, err := a.DivMod(b)
	if err != nil {
		return bigint.Zero, bigint.Zero, bigint.Zero, err
	}
	g, x1, y1, err := ExtGCD(b, r)
	if err != nil {
		return bigint.Zero, bigint.Zero, bigint.Zero, err
	}
	qy, err := q.MulFast(y1)
	if err != nil {
		return bigint.Zero, bigint.Zero, bigint.Zero, err
	}
	y, err = x1.Sub(qy)
	if err != nil {
		return bigint.Zero, bigint.Zero, bigint.Zero, err
	}
	return g, y1, y, nil
}

// ModInverse returns the unique d in [0, m) with a·d ≡ 1 (mod m).
//
// It fails with ErrNotInvertible when gcd(a, m) != 1 and with
// ErrInvalidModulus when m <= 0.
func ModInverse(a, m bigint.Int) (bigint.Int, error) {
	if m.Sign() <= 0 {
		return bigint.Zero, ErrInvalidModulus
	}
	a, err := Mod(a, m)
	if err != nil {
		return bigint.Zero, err
	}
	g, x, _, err := ExtGCD(a, m)
	if err != nil {
		return bigint.Zero, err
	}
	if !g.Equal(bigint.One) {
		return bigint.Zero, fmt.Errorf("%w: gcd(%s, %s) = %s", ErrNotInvertible, a, m, g)
	}
	return Mod(x, m)
}

// Mod returns x reduced into [0, m) for a positive modulus m.
func Mod(x, m bigint.Int) (bigint.Int, error) {
	if m.Sign() <= 0 {
		return bigint.Zero, ErrInvalidModulus
	}
	r, err := x.Rem(m)
	if err != nil {
		return bigint.Zero, err
	}
	if r.Sign() < 0 {
		return r.Add(m)
	}
	return r, nil
}
