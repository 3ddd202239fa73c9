package keys

import (
	"errors"
	"fmt"

	"github.com/agbru/rsacalc/internal/bigint"
)

const (
	// PublicExponent is the fixed public exponent e.
	PublicExponent = 17

	// ByteRadix is the encrypt_byte_val of generated keys: ciphertext blocks
	// are serialized as base-255 digits, one digit per output byte.
	ByteRadix = 255

	// DigitsPerByte is the number of decimal digits one plaintext byte
	// occupies inside a packed block.
	DigitsPerByte = 3

	// ChunkRadix is 10^DigitsPerByte, the packing radix of plaintext bytes.
	ChunkRadix = 1000

	// MinDigits is the smallest modulus size accepted by Generate. Smaller
	// sizes leave no room for a single plaintext byte per block.
	MinDigits = 5

	// MaxDigits is the largest modulus size accepted by Generate. The square
	// of a residue must still fit the engine capacity.
	MaxDigits = bigint.MaxLimbs * bigint.LimbDigits / 2
)

// ErrMalformedKey is returned for key material that cannot be used by the
// codec, whether it came from a file or was built by hand.
var ErrMalformedKey = errors.New("keys: malformed key")

// Params are the modulus and block sizing values shared by both halves of a
// key pair.
type Params struct {
	// N is the modulus p·q.
	N bigint.Int
	// FragmentSize is the number of plaintext bytes packed per block.
	FragmentSize int
	// EncryptFragmentSize is the number of ciphertext bytes per block.
	EncryptFragmentSize int
	// EncryptByteVal is the radix of the ciphertext digits.
	EncryptByteVal int
}

// PublicKey is the encryption half of a key pair.
type PublicKey struct {
	E bigint.Int
	Params
}

// SecretKey is the decryption half of a key pair.
type SecretKey struct {
	D bigint.Int
	Params
}

// Pair is a freshly generated key pair together with the primes it was
// derived from. P and Q are never persisted.
type Pair struct {
	Public PublicKey
	Secret SecretKey
	P, Q   bigint.Int
}

// Validate reports whether p can drive the block codec: n must exceed every
// packable block, the ciphertext radix must fit a byte, and the ciphertext
// block width must be exactly the number of base-EncryptByteVal digits of n.
func (p Params) Validate() error {
	if p.N.Cmp(bigint.New(ByteRadix)) <= 0 {
		return fmt.Errorf("%w: modulus %s is too small", ErrMalformedKey, p.N)
	}
	if p.EncryptByteVal < 2 || p.EncryptByteVal > 256 {
		return fmt.Errorf("%w: encrypt_byte_val %d out of range [2, 256]", ErrMalformedKey, p.EncryptByteVal)
	}
	if p.FragmentSize < 1 || p.FragmentSize > p.N.Digits()/DigitsPerByte {
		return fmt.Errorf("%w: fragment_size %d out of range for a %d-digit modulus", ErrMalformedKey, p.FragmentSize, p.N.Digits())
	}
	largest, err := LargestBlock(p.FragmentSize)
	if err != nil {
		return fmt.Errorf("%w: fragment_size %d: %v", ErrMalformedKey, p.FragmentSize, err)
	}
	if largest.Cmp(p.N) >= 0 {
		return fmt.Errorf("%w: fragment_size %d does not fit below the modulus", ErrMalformedKey, p.FragmentSize)
	}
	if want := RadixDigits(p.N, uint32(p.EncryptByteVal)); p.EncryptFragmentSize != want {
		return fmt.Errorf("%w: encrypt_fragment_size %d, modulus needs %d", ErrMalformedKey, p.EncryptFragmentSize, want)
	}
	return nil
}

// Validate checks the sizing parameters and that 0 < e < n.
func (k PublicKey) Validate() error {
	if err := k.Params.Validate(); err != nil {
		return err
	}
	return checkExponent("e", k.E, k.N)
}

// Validate checks the sizing parameters and that 0 < d < n.
func (k SecretKey) Validate() error {
	if err := k.Params.Validate(); err != nil {
		return err
	}
	return checkExponent("d", k.D, k.N)
}

func checkExponent(name string, x, n bigint.Int) error {
	if x.Sign() <= 0 || x.Cmp(n) >= 0 {
		return fmt.Errorf("%w: exponent %s must be in (0, n)", ErrMalformedKey, name)
	}
	return nil
}

// LargestBlock returns the largest value a block of size plaintext bytes can
// pack to: the decimal string "255" repeated size times.
func LargestBlock(size int) (bigint.Int, error) {
	buf := make([]byte, 0, size*DigitsPerByte)
	for i := 0; i < size; i++ {
		buf = append(buf, "255"...)
	}
	return bigint.Parse(string(buf))
}

// RadixDigits returns the number of base-radix digits of n (at least 1).
func RadixDigits(n bigint.Int, radix uint32) int {
	count := 0
	for x := n.Abs(); ; {
		x, _ = x.QuoRemLimb(radix)
		count++
		if x.IsZero() {
			return count
		}
	}
}

// FragmentSize returns the number of plaintext bytes per block for a modulus
// requested with digits decimal digits: (digits-1)/3, reduced until the
// largest packable block lies strictly below n. It returns 0 when not even a
// single byte fits.
func FragmentSize(digits int, n bigint.Int) int {
	fs := (digits - 1) / DigitsPerByte
	for fs > 0 {
		largest, err := LargestBlock(fs)
		if err == nil && largest.Cmp(n) < 0 {
			break
		}
		fs--
	}
	return fs
}
