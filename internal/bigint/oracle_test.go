package bigint

import (
	"math/big"
	"math/rand/v2"
	"strings"
	"testing"
)

// randomDecimal returns a signed decimal string of 1..maxDigits digits
// without leading zeros.
func randomDecimal(r *rand.Rand, maxDigits int) string {
	n := 1 + r.IntN(maxDigits)
	var sb strings.Builder
	if r.IntN(2) == 0 {
		sb.WriteByte('-')
	}
	sb.WriteByte(byte('1' + r.IntN(9)))
	for i := 1; i < n; i++ {
		sb.WriteByte(byte('0' + r.IntN(10)))
	}
	return sb.String()
}

func oracle(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("oracle: bad literal " + s)
	}
	return v
}

// TestOracle_MultiLimb cross-checks every operation on values of up to a few
// hundred digits against math/big. math/big is only used here as a reference.
func TestOracle_MultiLimb(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(2021, 1130))

	for i := 0; i < 300; i++ {
		as, bs := randomDecimal(rng, 400), randomDecimal(rng, 200)
		a, b := MustParse(as), MustParse(bs)
		oa, ob := oracle(as), oracle(bs)

		sum, err := a.Add(b)
		if err != nil || sum.String() != new(big.Int).Add(oa, ob).String() {
			t.Fatalf("Add(%s, %s) = %s, %v", as, bs, sum, err)
		}
		dif, err := a.Sub(b)
		if err != nil || dif.String() != new(big.Int).Sub(oa, ob).String() {
			t.Fatalf("Sub(%s, %s) = %s, %v", as, bs, dif, err)
		}
		want := new(big.Int).Mul(oa, ob).String()
		if p, err := a.Mul(b); err != nil || p.String() != want {
			t.Fatalf("Mul(%s, %s) = %s, %v", as, bs, p, err)
		}
		if p, err := a.MulFast(b); err != nil || p.String() != want {
			t.Fatalf("MulFast(%s, %s) = %s, %v", as, bs, p, err)
		}
		q, r, err := a.DivMod(b)
		wq, wr := new(big.Int).QuoRem(oa, ob, new(big.Int))
		if err != nil || q.String() != wq.String() || r.String() != wr.String() {
			t.Fatalf("DivMod(%s, %s) = (%s, %s), %v; want (%s, %s)", as, bs, q, r, err, wq, wr)
		}
	}
}
