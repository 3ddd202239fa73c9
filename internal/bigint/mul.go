package bigint

import "fmt"

// Mul returns x * y using schoolbook multiplication.
//
// Every limb pair is accumulated into a uint64 column buffer sized to the
// sum of the operand lengths, and carries are resolved in a single pass at
// the end. The cost is O(len(x)·len(y)).
func (x Int) Mul(y Int) (Int, error) {
	if x.sign == 0 || y.sign == 0 {
		return Int{}, nil
	}
	a, b := x.limbs, y.limbs
	// The product has at least len(a)+len(b)-1 limbs.
	if n := len(a) + len(b) - 1; n > MaxLimbs {
		return Int{}, capacityError("mul", n)
	}

	cols := make([]uint64, len(a)+len(b))
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			cols[i+j] += uint64(ai) * uint64(bj)
		}
	}

	z := make([]uint32, len(cols))
	var carry uint64
	for k, c := range cols {
		c += carry
		z[k] = uint32(c % Radix)
		carry = c / Radix
	}

	p := newInt(z, x.sign*y.sign)
	if len(p.limbs) > MaxLimbs {
		return Int{}, capacityError("mul", len(p.limbs))
	}
	return p, nil
}

// MulLimb returns x * w for a single limb value w in [0, Radix).
// It panics if w is out of range.
func (x Int) MulLimb(w uint32) (Int, error) {
	if w >= Radix {
		panic(fmt.Sprintf("bigint: MulLimb operand %d out of range", w))
	}
	if x.sign == 0 || w == 0 {
		return Int{}, nil
	}
	z := make([]uint32, len(x.limbs)+1)
	var carry uint32
	for i, xi := range x.limbs {
		p := xi*w + carry
		z[i] = p % Radix
		carry = p / Radix
	}
	z[len(x.limbs)] = carry

	p := newInt(z, x.sign)
	if len(p.limbs) > MaxLimbs {
		return Int{}, capacityError("mul", len(p.limbs))
	}
	return p, nil
}

// MulFast returns x * y using divide-and-conquer multiplication.
//
// Each operand is split at half its limb count into a high and a low part
// (v = hi·Radix^k + lo). The four cross products are computed recursively,
// shifted into place and summed:
//
//	x·y = xh·yh·R^(kx+ky) + xh·yl·R^kx + xl·yh·R^ky + xl·yl
//
// No subtraction trick is applied, so the asymptotic cost matches Mul. When
// either operand has a single active limb the recursion bottoms out in Mul.
func (x Int) MulFast(y Int) (Int, error) {
	if x.Len() == 1 || y.Len() == 1 {
		return x.Mul(y)
	}

	kx := x.Len() / 2
	xh, xl := x.Rsh(kx), x.Extract(kx)
	ky := y.Len() / 2
	yh, yl := y.Rsh(ky), y.Extract(ky)

	hh, err := xh.MulFast(yh)
	if err != nil {
		return Int{}, err
	}
	if hh, err = hh.Lsh(kx + ky); err != nil {
		return Int{}, err
	}
	hl, err := xh.MulFast(yl)
	if err != nil {
		return Int{}, err
	}
	if hl, err = hl.Lsh(kx); err != nil {
		return Int{}, err
	}
	lh, err := xl.MulFast(yh)
	if err != nil {
		return Int{}, err
	}
	if lh, err = lh.Lsh(ky); err != nil {
		return Int{}, err
	}
	ll, err := xl.MulFast(yl)
	if err != nil {
		return Int{}, err
	}

	z, err := hh.Add(hl)
	if err != nil {
		return Int{}, err
	}
	if z, err = z.Add(lh); err != nil {
		return Int{}, err
	}
	return z.Add(ll)
}
