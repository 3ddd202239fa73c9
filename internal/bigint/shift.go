package bigint

// Lsh returns x · Radix^k by inserting k zero limbs at the low end. It fails
// with ErrCapacityExceeded when the result would not fit in MaxLimbs limbs.
// A non-positive k returns x unchanged.
func (x Int) Lsh(k int) (Int, error) {
	if k <= 0 || x.sign == 0 {
		return x, nil
	}
	n := len(x.limbs) + k
	if n > MaxLimbs {
		return Int{}, capacityError("shift", n)
	}
	z := make([]uint32, n)
	copy(z[k:], x.limbs)
	return Int{limbs: z, sign: x.sign}, nil
}

// Rsh returns x / Radix^k truncated toward zero, removing the k least
// significant limbs. A non-positive k returns x unchanged.
func (x Int) Rsh(k int) Int {
	if k <= 0 {
		return x
	}
	if len(x.limbs) <= k {
		return Int{}
	}
	z := make([]uint32, len(x.limbs)-k)
	copy(z, x.limbs[k:])
	return newInt(z, x.sign)
}

// Extract returns the value of the k least significant limbs of x, keeping
// the sign of x. It is the low half used by MulFast to split an operand.
func (x Int) Extract(k int) Int {
	if k <= 0 {
		return Int{}
	}
	if len(x.limbs) <= k {
		return x
	}
	z := make([]uint32, k)
	copy(z, x.limbs[:k])
	return newInt(z, x.sign)
}
