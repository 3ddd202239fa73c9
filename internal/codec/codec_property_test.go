package codec

import (
	"bytes"
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/rsacalc/internal/keys"
)

// TestRoundTrip_PropertyBased verifies decrypt(encrypt(M)) == M for byte
// buffers without NUL bytes, and the base64 transcoding identity for
// arbitrary buffers.
func TestRoundTrip_PropertyBased(t *testing.T) {
	pair, err := keys.Generate(context.Background(), 24, 424242)
	if err != nil {
		t.Fatal(err)
	}
	codec := &Codec{Workers: 2}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("decrypt inverts encrypt", prop.ForAll(
		func(msg []uint8) bool {
			ct, err := codec.Encrypt(context.Background(), msg, pair.Public)
			if err != nil {
				return false
			}
			pt, err := codec.Decrypt(context.Background(), ct, pair.Secret)
			return err == nil && bytes.Equal(pt, msg)
		},
		gen.SliceOf(gen.UInt8Range(1, 255)),
	))

	properties.Property("base64 decode inverts encode", prop.ForAll(
		func(b []uint8) bool {
			back, err := DecodeBase64(EncodeBase64(b))
			return err == nil && bytes.Equal(back, b)
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
