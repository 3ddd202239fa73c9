package bigint

// addAbs returns the limbs of |a| + |b|. The longer operand is chosen
// locally; neither input slice is modified.
func addAbs(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	z := make([]uint32, len(a)+1)
	var carry uint32
	for i := range a {
		s := a[i] + carry
		if i < len(b) {
			s += b[i]
		}
		if s >= Radix {
			z[i] = s - Radix
			carry = 1
		} else {
			z[i] = s
			carry = 0
		}
	}
	z[len(a)] = carry
	return z
}

// subAbs returns the limbs of |a| - |b|. The caller guarantees |a| >= |b|;
// the borrow out of the top limb is therefore always zero.
func subAbs(a, b []uint32) []uint32 {
	z := make([]uint32, len(a))
	var borrow uint32
	for i := range a {
		sub := borrow
		if i < len(b) {
			sub += b[i]
		}
		if a[i] >= sub {
			z[i] = a[i] - sub
			borrow = 0
		} else {
			z[i] = a[i] + Radix - sub
			borrow = 1
		}
	}
	return z
}

// Add returns x + y.
//
// Operands of opposite sign degrade to a magnitude subtraction, ordered so
// that the larger magnitude is the minuend; the result takes the sign of
// that operand.
func (x Int) Add(y Int) (Int, error) {
	if x.sign == 0 {
		return y, nil
	}
	if y.sign == 0 {
		return x, nil
	}

	var z Int
	if x.sign == y.sign {
		z = newInt(addAbs(x.limbs, y.limbs), x.sign)
	} else {
		switch cmpLimbs(x.limbs, y.limbs) {
		case 0:
			return Int{}, nil
		case 1:
			z = newInt(subAbs(x.limbs, y.limbs), x.sign)
		default:
			z = newInt(subAbs(y.limbs, x.limbs), y.sign)
		}
	}
	if len(z.limbs) > MaxLimbs {
		return Int{}, capacityError("add", len(z.limbs))
	}
	return z, nil
}

// Sub returns x - y, computed as x + (-y).
func (x Int) Sub(y Int) (Int, error) {
	return x.Add(y.Neg())
}
