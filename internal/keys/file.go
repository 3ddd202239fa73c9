package keys

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agbru/rsacalc/internal/bigint"
)

// keyFields is the number of fields in a key file.
const keyFields = 5

// MarshalText encodes the key in the five-line key file format.
func (k PublicKey) MarshalText() ([]byte, error) {
	return marshalKey(k.E, k.Params), nil
}

// UnmarshalText decodes and validates a public key file.
func (k *PublicKey) UnmarshalText(data []byte) error {
	e, params, err := parseKey(data)
	if err != nil {
		return err
	}
	key := PublicKey{E: e, Params: params}
	if err := key.Validate(); err != nil {
		return err
	}
	*k = key
	return nil
}

// MarshalText encodes the key in the five-line key file format.
func (k SecretKey) MarshalText() ([]byte, error) {
	return marshalKey(k.D, k.Params), nil
}

// UnmarshalText decodes and validates a secret key file.
func (k *SecretKey) UnmarshalText(data []byte) error {
	d, params, err := parseKey(data)
	if err != nil {
		return err
	}
	key := SecretKey{D: d, Params: params}
	if err := key.Validate(); err != nil {
		return err
	}
	*k = key
	return nil
}

// ParsePublic decodes a public key file.
func ParsePublic(data []byte) (PublicKey, error) {
	var k PublicKey
	err := k.UnmarshalText(data)
	return k, err
}

// ParseSecret decodes a secret key file.
func ParseSecret(data []byte) (SecretKey, error) {
	var k SecretKey
	err := k.UnmarshalText(data)
	return k, err
}

// LoadPublic reads and validates the public key file at path.
func LoadPublic(path string) (PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PublicKey{}, fmt.Errorf("failed to read public key: %w", err)
	}
	k, err := ParsePublic(data)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%s: %w", path, err)
	}
	return k, nil
}

// LoadSecret reads and validates the secret key file at path.
func LoadSecret(path string) (SecretKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SecretKey{}, fmt.Errorf("failed to read secret key: %w", err)
	}
	k, err := ParseSecret(data)
	if err != nil {
		return SecretKey{}, fmt.Errorf("%s: %w", path, err)
	}
	return k, nil
}

// SavePublic writes k to path, creating parent directories as needed.
func SavePublic(path string, k PublicKey) error {
	data, _ := k.MarshalText()
	return writeKeyFile(path, data, 0o644)
}

// SaveSecret writes k to path with owner-only permissions.
func SaveSecret(path string, k SecretKey) error {
	data, _ := k.MarshalText()
	return writeKeyFile(path, data, 0o600)
}

func writeKeyFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

func marshalKey(exp bigint.Int, p Params) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, exp)
	fmt.Fprintln(&buf, p.N)
	fmt.Fprintln(&buf, p.FragmentSize)
	fmt.Fprintln(&buf, p.EncryptFragmentSize)
	fmt.Fprintln(&buf, p.EncryptByteVal)
	return buf.Bytes()
}

// parseKey splits on any whitespace, so files edited on other platforms
// (CRLF line endings, trailing blank lines) still load.
func parseKey(data []byte) (bigint.Int, Params, error) {
	fields := strings.Fields(string(data))
	if len(fields) != keyFields {
		return bigint.Zero, Params{}, fmt.Errorf("%w: want %d fields, got %d", ErrMalformedKey, keyFields, len(fields))
	}
	exp, err := bigint.Parse(fields[0])
	if err != nil {
		return bigint.Zero, Params{}, fmt.Errorf("%w: exponent: %v", ErrMalformedKey, err)
	}
	n, err := bigint.Parse(fields[1])
	if err != nil {
		return bigint.Zero, Params{}, fmt.Errorf("%w: modulus: %v", ErrMalformedKey, err)
	}
	var sizes [3]int
	for i, name := range []string{"fragment_size", "encrypt_fragment_size", "encrypt_byte_val"} {
		v, err := strconv.Atoi(fields[2+i])
		if err != nil {
			return bigint.Zero, Params{}, fmt.Errorf("%w: %s: %v", ErrMalformedKey, name, err)
		}
		sizes[i] = v
	}
	return exp, Params{
		N:                   n,
		FragmentSize:        sizes[0],
		EncryptFragmentSize: sizes[1],
		EncryptByteVal:      sizes[2],
	}, nil
}
