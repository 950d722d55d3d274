package codec

import "github.com/unkn0wn-root/binser"

// Limit wraps another codec to enforce a maximum payload size. Decode checks
// before Inner sees the bytes, which is the place to bound input read from a
// shared store or an untrusted peer. Encode checks the produced payload.
// A limit <= 0 disables that direction.
type Limit[V any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner     Codec[V]
	MaxDecode int
	MaxEncode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) {
	b, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	if c.MaxEncode > 0 && len(b) > c.MaxEncode {
		return nil, &binser.LengthError{What: "payload", Len: len(b), Max: c.MaxEncode}
	}
	return b, nil
}

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, &binser.LengthError{What: "payload", Len: len(b), Max: c.MaxDecode}
	}
	return c.Inner.Decode(b)
}
