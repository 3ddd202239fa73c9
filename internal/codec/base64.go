package codec

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ErrMalformedBase64 is returned for text that is not standard padded
// base64.
var ErrMalformedBase64 = fmt.Errorf("%w: invalid base64", ErrMalformedCiphertext)

// EncodeBase64 encodes b with the standard alphabet and '=' padding.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 decodes standard padded base64. Surrounding whitespace and
// line breaks are ignored; truncated or otherwise invalid input is rejected.
func DecodeBase64(s string) ([]byte, error) {
	clean := strings.Join(strings.Fields(s), "")
	b, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBase64, err)
	}
	return b, nil
}
