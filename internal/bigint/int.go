package bigint

import (
	"errors"
	"fmt"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Representation Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// Radix is the base of the limb representation. Every limb holds a value
	// in [0, Radix). The product of two limbs (< 10^8) fits in a uint32 and a
	// full schoolbook column of MaxLimbs products fits in a uint64.
	Radix = 10000

	// LimbDigits is the number of decimal digits stored per limb.
	LimbDigits = 4

	// MaxLimbs is the largest number of limbs a value may occupy (8200
	// decimal digits). It bounds the engine so that the square of a residue
	// modulo a 4100-digit modulus still fits.
	MaxLimbs = 2050
)

var (
	// ErrCapacityExceeded is returned when a result would need more than
	// MaxLimbs limbs.
	ErrCapacityExceeded = errors.New("bigint: capacity exceeded")

	// ErrDivisionByZero is returned by the division entry points when the
	// divisor is zero.
	ErrDivisionByZero = errors.New("bigint: division by zero")

	// ErrSyntax is returned by Parse for strings that are not optionally
	// signed decimal integers.
	ErrSyntax = errors.New("bigint: invalid decimal syntax")
)

// Int is a signed arbitrary-precision integer. The zero value is 0.
type Int struct {
	// limbs is the magnitude, least significant limb first. It never has a
	// most-significant zero limb; zero is represented by an empty slice.
	limbs []uint32
	// sign is -1, 0 or +1 and is 0 exactly when the value is zero.
	sign int
}

// Frequently used small constants.
var (
	Zero = Int{}
	One  = New(1)
	Two  = New(2)
)

// newInt builds an Int from a limb slice it takes ownership of, trimming
// most-significant zero limbs and canonicalizing the sign of zero.
func newInt(limbs []uint32, sign int) Int {
	n := len(limbs)
	for n > 0 && limbs[n-1] == 0 {
		n--
	}
	if n == 0 || sign == 0 {
		return Int{}
	}
	if sign > 0 {
		sign = 1
	} else {
		sign = -1
	}
	return Int{limbs: limbs[:n:n], sign: sign}
}

// capacityError reports that op needed limbs limbs.
func capacityError(op string, limbs int) error {
	return fmt.Errorf("%w: %s needs %d limbs (max %d)", ErrCapacityExceeded, op, limbs, MaxLimbs)
}

// New returns the Int with value x.
func New(x int64) Int {
	if x == 0 {
		return Int{}
	}
	sign := 1
	u := uint64(x)
	if x < 0 {
		sign = -1
		u = uint64(-(x + 1)) + 1
	}
	limbs := make([]uint32, 0, 5)
	for u > 0 {
		limbs = append(limbs, uint32(u%Radix))
		u /= Radix
	}
	return newInt(limbs, sign)
}

// Parse converts a decimal string with an optional leading '+' or '-' into
// an Int. Leading zeros are accepted and discarded. It returns an error
// wrapping ErrSyntax when s contains anything other than digits after the
// sign, and ErrCapacityExceeded when the value does not fit.
func Parse(s string) (Int, error) {
	digits := s
	sign := 1
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		if digits[0] == '-' {
			sign = -1
		}
		digits = digits[1:]
	}
	if digits == "" {
		return Int{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Int{}, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
	}
	digits = strings.TrimLeft(digits, "0")

	n := (len(digits) + LimbDigits - 1) / LimbDigits
	if n > MaxLimbs {
		return Int{}, capacityError("parse", n)
	}

	// Digit groups are read right to left, LimbDigits at a time.
	limbs := make([]uint32, n)
	for i, end := 0, len(digits); end > 0; i, end = i+1, end-LimbDigits {
		start := max(end-LimbDigits, 0)
		var v uint32
		for _, c := range digits[start:end] {
			v = v*10 + uint32(c-'0')
		}
		limbs[i] = v
	}
	return newInt(limbs, sign), nil
}

// MustParse is like Parse but panics on error. It is intended for constants
// in tests and package initialization.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// String returns the canonical decimal representation of x: no redundant
// leading zeros and a '-' prefix for negative values.
func (x Int) String() string {
	if x.sign == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(len(x.limbs)*LimbDigits + 1)
	if x.sign < 0 {
		sb.WriteByte('-')
	}
	top := len(x.limbs) - 1
	fmt.Fprintf(&sb, "%d", x.limbs[top])
	for i := top - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%04d", x.limbs[i])
	}
	return sb.String()
}

// Int64 returns x as an int64 and reports whether the conversion was exact.
func (x Int) Int64() (int64, bool) {
	var u uint64
	for i := len(x.limbs) - 1; i >= 0; i-- {
		if u > (1<<63)/Radix {
			return 0, false
		}
		u = u*Radix + uint64(x.limbs[i])
	}
	switch {
	case x.sign >= 0 && u <= 1<<63-1:
		return int64(u), true
	case x.sign < 0 && u <= 1<<63:
		return -int64(u-1) - 1, true
	}
	return 0, false
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Int) Sign() int { return x.sign }

// IsZero reports whether x == 0.
func (x Int) IsZero() bool { return x.sign == 0 }

// IsOdd reports whether x is odd. Radix is even, so parity is decided by
// the least significant limb.
func (x Int) IsOdd() bool { return x.sign != 0 && x.limbs[0]&1 == 1 }

// Len returns the number of active limbs. Zero has one active limb.
func (x Int) Len() int {
	if len(x.limbs) == 0 {
		return 1
	}
	return len(x.limbs)
}

// Digits returns the number of decimal digits in the magnitude of x.
// Zero has one digit.
func (x Int) Digits() int {
	if x.sign == 0 {
		return 1
	}
	top := x.limbs[len(x.limbs)-1]
	n := (len(x.limbs) - 1) * LimbDigits
	for top > 0 {
		n++
		top /= 10
	}
	return n
}

// Abs returns |x|.
func (x Int) Abs() Int {
	if x.sign < 0 {
		x.sign = 1
	}
	return x
}

// Neg returns -x.
func (x Int) Neg() Int {
	x.sign = -x.sign
	return x
}

// CmpAbs compares the magnitudes of x and y and returns -1, 0 or +1.
// Longer magnitudes are larger; equal lengths compare limb by limb from the
// most significant end.
func (x Int) CmpAbs(y Int) int {
	return cmpLimbs(x.limbs, y.limbs)
}

// Cmp compares x and y as signed values and returns -1, 0 or +1.
func (x Int) Cmp(y Int) int {
	switch {
	case x.sign > y.sign:
		return 1
	case x.sign < y.sign:
		return -1
	case x.sign == 0:
		return 0
	case x.sign < 0:
		return -cmpLimbs(x.limbs, y.limbs)
	}
	return cmpLimbs(x.limbs, y.limbs)
}

// Equal reports whether x == y.
func (x Int) Equal(y Int) bool { return x.Cmp(y) == 0 }

func cmpLimbs(a, b []uint32) int {
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}
