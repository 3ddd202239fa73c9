package codec

import (
	"fmt"

	"github.com/agbru/rsacalc/internal/bigint"
	"github.com/agbru/rsacalc/internal/keys"
)

// Pack concatenates the bytes of block as three-digit decimal chunks, first
// byte most significant.
func Pack(block []byte) (bigint.Int, error) {
	m := bigint.Zero
	var err error
	for _, b := range block {
		if m, err = m.MulLimb(keys.ChunkRadix); err != nil {
			return bigint.Zero, err
		}
		if m, err = m.Add(bigint.New(int64(b))); err != nil {
			return bigint.Zero, err
		}
	}
	return m, nil
}

// Unpack inverts Pack. A full block always yields exactly size bytes, so NUL
// bytes at its start survive. A final block yields chunks until m is
// exhausted, at least one and at most size.
func Unpack(m bigint.Int, size int, final bool) ([]byte, error) {
	if m.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative block", ErrMalformedCiphertext)
	}
	out := make([]byte, 0, size)
	for {
		var chunk uint32
		m, chunk = m.QuoRemLimb(keys.ChunkRadix)
		if chunk > 255 {
			return nil, fmt.Errorf("%w: chunk %d is not a byte", ErrMalformedCiphertext, chunk)
		}
		out = append(out, byte(chunk))
		if len(out) > size {
			return nil, fmt.Errorf("%w: block unpacks to more than %d bytes", ErrMalformedCiphertext, size)
		}
		if final && m.IsZero() {
			break
		}
		if !final && len(out) == size {
			if !m.IsZero() {
				return nil, fmt.Errorf("%w: block unpacks to more than %d bytes", ErrMalformedCiphertext, size)
			}
			break
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Serialize writes c as exactly width base-radix digits into dst, most
// significant digit first.
func Serialize(dst []byte, c bigint.Int, radix uint32) error {
	for i := len(dst) - 1; i >= 0; i-- {
		var digit uint32
		c, digit = c.QuoRemLimb(radix)
		dst[i] = byte(digit)
	}
	if !c.IsZero() {
		return fmt.Errorf("value does not fit in %d base-%d digits", len(dst), radix)
	}
	return nil
}

// Deserialize reads the base-radix digits of src, most significant first.
// Every digit must be below radix.
func Deserialize(src []byte, radix uint32) (bigint.Int, error) {
	c := bigint.Zero
	var err error
	for i, d := range src {
		if uint32(d) >= radix {
			return bigint.Zero, fmt.Errorf("%w: byte %d at offset %d is not a base-%d digit", ErrMalformedCiphertext, d, i, radix)
		}
		if c, err = c.MulLimb(radix); err != nil {
			return bigint.Zero, err
		}
		if c, err = c.Add(bigint.New(int64(d))); err != nil {
			return bigint.Zero, err
		}
	}
	return c, nil
}
