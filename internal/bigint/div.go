package bigint

import "fmt"

// DivMod returns the truncated quotient q = x / y and remainder r = x % y,
// so that x = q·y + r and |r| < |y|. It fails with ErrDivisionByZero when
// y is zero.
func (x Int) DivMod(y Int) (q, r Int, err error) {
	if y.sign == 0 {
		return Int{}, Int{}, ErrDivisionByZero
	}
	switch cmpLimbs(x.limbs, y.limbs) {
	case -1:
		return Int{}, x, nil
	case 0:
		return newInt([]uint32{1}, x.sign*y.sign), Int{}, nil
	}
	ql, rl := divmodAbs(x.limbs, y.limbs)
	return newInt(ql, x.sign*y.sign), newInt(rl, x.sign), nil
}

// Quo returns the quotient x / y truncated toward zero.
func (x Int) Quo(y Int) (Int, error) {
	if y.sign == 0 {
		return Int{}, ErrDivisionByZero
	}
	switch cmpLimbs(x.limbs, y.limbs) {
	case -1:
		return Int{}, nil
	case 0:
		return newInt([]uint32{1}, x.sign*y.sign), nil
	}
	ql, _ := divmodAbs(x.limbs, y.limbs)
	return newInt(ql, x.sign*y.sign), nil
}

// Rem returns the remainder x % y. A nonzero remainder has the sign of x.
func (x Int) Rem(y Int) (Int, error) {
	if y.sign == 0 {
		return Int{}, ErrDivisionByZero
	}
	switch cmpLimbs(x.limbs, y.limbs) {
	case -1:
		return x, nil
	case 0:
		return Int{}, nil
	}
	_, rl := divmodAbs(x.limbs, y.limbs)
	return newInt(rl, x.sign), nil
}

// divmodAbs performs long division of magnitudes, one limb of the dividend
// per step from the most significant end.
//
// At every step the running remainder is shifted up one limb and the next
// dividend limb is folded in at position 0. The quotient limb for the step
// is the largest q in [1, Radix) with b·q <= rem; the radix is too large to
// estimate it directly, so it is found by binary search.
func divmodAbs(a, b []uint32) (quo, rem []uint32) {
	divisor := Int{limbs: b, sign: 1}
	quo = make([]uint32, len(a))
	var r Int
	for i := len(a) - 1; i >= 0; i-- {
		shifted := make([]uint32, len(r.limbs)+1)
		shifted[0] = a[i]
		copy(shifted[1:], r.limbs)
		r = newInt(shifted, 1)

		if cmpLimbs(r.limbs, b) < 0 {
			continue
		}
		q, prod := maxFactor(divisor, r)
		quo[i] = q
		r = newInt(subAbs(r.limbs, prod.limbs), 1)
	}
	return quo, r.limbs
}

// maxFactor returns the largest q in [1, Radix) with d·q <= r together with
// d·q. The caller guarantees d <= r < d·Radix.
func maxFactor(d, r Int) (uint32, Int) {
	lo, hi := uint32(1), uint32(Radix)
	best := d
	for hi-lo > 1 {
		m := (lo + hi) / 2
		p := mulLimbUnchecked(d, m)
		if cmpLimbs(p.limbs, r.limbs) > 0 {
			hi = m
		} else {
			lo, best = m, p
		}
	}
	return lo, best
}

// mulLimbUnchecked is MulLimb without the capacity check. The products formed
// during division never exceed the running remainder by more than one limb.
func mulLimbUnchecked(x Int, w uint32) Int {
	z := make([]uint32, len(x.limbs)+1)
	var carry uint32
	for i, xi := range x.limbs {
		p := xi*w + carry
		z[i] = p % Radix
		carry = p / Radix
	}
	z[len(x.limbs)] = carry
	return newInt(z, x.sign)
}

// QuoRemLimb divides the magnitude of x by a single limb value w in
// [1, Radix). The quotient keeps the sign of x; the remainder is that of the
// magnitude. It panics if w is out of range.
func (x Int) QuoRemLimb(w uint32) (Int, uint32) {
	if w == 0 || w >= Radix {
		panic(fmt.Sprintf("bigint: QuoRemLimb divisor %d out of range", w))
	}
	if x.sign == 0 {
		return Int{}, 0
	}
	z := make([]uint32, len(x.limbs))
	var r uint32
	for i := len(x.limbs) - 1; i >= 0; i-- {
		cur := r*Radix + x.limbs[i]
		z[i] = cur / w
		r = cur % w
	}
	return newInt(z, x.sign), r
}
