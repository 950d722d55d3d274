package codec

import (
	"unicode/utf8"

	"github.com/unkn0wn-root/binser"
)

// Bytes is an identity codec for []byte values. Decode returns a copy so the
// result does not alias a provider's buffer.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return append([]byte(nil), b...), nil }

// String stores Go strings as their raw UTF-8 bytes. Both directions reject
// invalid UTF-8 with binser.ErrMalformedText.
type String struct{}

func (String) Encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, binser.ErrMalformedText
	}
	return []byte(s), nil
}

func (String) Decode(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", binser.ErrMalformedText
	}
	return string(b), nil
}
