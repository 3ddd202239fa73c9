package bigint

import (
	"math"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genDecimal generates canonical signed decimal strings of up to 120 digits.
func genDecimal() gopter.Gen {
	return gopter.CombineGens(gen.Bool(), gen.NumString()).Map(func(v []interface{}) string {
		neg := v[0].(bool)
		digits := strings.TrimLeft(v[1].(string), "0")
		if len(digits) > 120 {
			digits = digits[:120]
		}
		if digits == "" {
			return "0"
		}
		if neg {
			return "-" + digits
		}
		return digits
	})
}

// TestStringRoundTrip_PropertyBased verifies to_string(from_string(x)) == x
// for canonical decimal strings.
func TestStringRoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Parse then String is the identity on canonical strings", prop.ForAll(
		func(s string) bool {
			x, err := Parse(s)
			return err == nil && x.String() == s
		},
		genDecimal(),
	))

	properties.TestingRun(t)
}

// TestNativeAgreement_PropertyBased checks addition, subtraction and
// multiplication against native int64 arithmetic where the results fit.
func TestNativeAgreement_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	half := gen.Int64Range(math.MinInt64/2, math.MaxInt64/2)
	small := gen.Int64Range(-3_000_000_000, 3_000_000_000)

	properties.Property("Add matches native sum", prop.ForAll(
		func(a, b int64) bool {
			sum, err := New(a).Add(New(b))
			got, ok := sum.Int64()
			return err == nil && ok && got == a+b
		},
		half, half,
	))

	properties.Property("Sub matches native difference", prop.ForAll(
		func(a, b int64) bool {
			dif, err := New(a).Sub(New(b))
			got, ok := dif.Int64()
			return err == nil && ok && got == a-b
		},
		half, half,
	))

	properties.Property("Mul matches native product", prop.ForAll(
		func(a, b int64) bool {
			p, err := New(a).Mul(New(b))
			got, ok := p.Int64()
			return err == nil && ok && got == a*b
		},
		small, small,
	))

	properties.Property("DivMod matches native truncated division", prop.ForAll(
		func(a, b int64) bool {
			if b == 0 {
				b = 1
			}
			q, r, err := New(a).DivMod(New(b))
			gq, okq := q.Int64()
			gr, okr := r.Int64()
			return err == nil && okq && okr && gq == a/b && gr == a%b
		},
		half, small,
	))

	properties.TestingRun(t)
}

// TestArithmeticIdentities_PropertyBased verifies algebraic identities on
// multi-limb values.
func TestArithmeticIdentities_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Mul is commutative", prop.ForAll(
		func(as, bs string) bool {
			a, b := MustParse(as), MustParse(bs)
			ab, err1 := a.Mul(b)
			ba, err2 := b.Mul(a)
			return err1 == nil && err2 == nil && ab.Equal(ba)
		},
		genDecimal(), genDecimal(),
	))

	properties.Property("MulFast agrees with schoolbook Mul", prop.ForAll(
		func(as, bs string) bool {
			a, b := MustParse(as), MustParse(bs)
			slow, err1 := a.Mul(b)
			fast, err2 := a.MulFast(b)
			return err1 == nil && err2 == nil && slow.Equal(fast)
		},
		genDecimal(), genDecimal(),
	))

	properties.Property("a == (a/b)*b + a%b and |a%b| < |b|", prop.ForAll(
		func(as, bs string) bool {
			a, b := MustParse(as), MustParse(bs)
			if b.IsZero() {
				return true
			}
			q, r, err := a.DivMod(b)
			if err != nil {
				return false
			}
			qb, err := q.MulFast(b)
			if err != nil {
				return false
			}
			back, err := qb.Add(r)
			if err != nil {
				return false
			}
			if !back.Equal(a) || r.CmpAbs(b) >= 0 {
				return false
			}
			return r.IsZero() || r.Sign() == a.Sign()
		},
		genDecimal(), genDecimal(),
	))

	properties.Property("(a + b) - b == a", prop.ForAll(
		func(as, bs string) bool {
			a, b := MustParse(as), MustParse(bs)
			s, err := a.Add(b)
			if err != nil {
				return false
			}
			back, err := s.Sub(b)
			return err == nil && back.Equal(a)
		},
		genDecimal(), genDecimal(),
	))

	properties.TestingRun(t)
}
