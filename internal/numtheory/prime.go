package numtheory

import (
	"github.com/agbru/rsacalc/internal/bigint"
)

// witnesses are the Miller–Rabin bases, every prime below 230.
var witnesses = []int64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29,
	31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113,
	127, 131, 137, 139, 149, 151, 157, 163, 167, 173,
	179, 181, 191, 193, 197, 199, 211, 223, 227,
}

// Witnesses returns a copy of the fixed witness set used by IsProbablePrime.
func Witnesses() []int64 {
	return append([]int64(nil), witnesses...)
}

// IsProbablePrime runs Miller–Rabin against every fixed witness.
//
// Values below 2 are composite, 2 is prime, and a candidate equal to one of
// the witnesses is prime. For p-1 = 2^k·t with t odd, each witness a is
// raised to t and squared k times; p is rejected when a square equals 1 from
// a residue other than ±1, or when the final residue is not 1.
//
// The answer is exact for every candidate below the square of the largest
// witness and probable beyond that. An error is returned only when the
// underlying arithmetic exceeds the engine capacity.
func IsProbablePrime(p bigint.Int) (bool, error) {
	if p.Cmp(bigint.Two) < 0 {
		return false, nil
	}
	if p.Equal(bigint.Two) {
		return true, nil
	}
	if !p.IsOdd() {
		return false, nil
	}

	pMinus1, err := p.Sub(bigint.One)
	if err != nil {
		return false, err
	}
	t, k := pMinus1, 0
	for !t.IsOdd() {
		t, _ = t.QuoRemLimb(2)
		k++
	}

	for _, w := range witnesses {
		a := bigint.New(w)
		if p.Equal(a) {
			return true, nil
		}
		res, err := ModPow(a, t, p)
		if err != nil {
			return false, err
		}
		for j := 0; j < k; j++ {
			sq, err := mulReduce(res, res, p)
			if err != nil {
				return false, err
			}
			if sq.Equal(bigint.One) && !res.Equal(bigint.One) && !res.Equal(pMinus1) {
				return false, nil
			}
			res = sq
		}
		if !res.Equal(bigint.One) {
			return false, nil
		}
	}
	return true, nil
}
