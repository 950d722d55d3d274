package codec

import "github.com/unkn0wn-root/binser"

// Binary encodes records with the binser wire format. T is the record type;
// its pointer must implement binser.Serializable. The zero value uses default
// binser.Options; set Options to match the peer (UUID layout, count caps).
type Binary[T any, PT interface {
	*T
	binser.Serializable
}] struct {
	Options binser.Options
}

func (c Binary[T, PT]) Encode(v T) ([]byte, error) {
	return binser.MarshalOptions(PT(&v), c.Options)
}

// Decode rejects payloads with bytes left over after the record.
func (c Binary[T, PT]) Decode(b []byte) (T, error) {
	var v T
	err := binser.UnmarshalOptions(b, PT(&v), c.Options)
	return v, err
}

// NewBinary returns a Binary codec; T alone is enough at the call site:
//
//	c := codec.NewBinary[FileEntry](binser.Options{})
func NewBinary[T any, PT interface {
	*T
	binser.Serializable
}](opts binser.Options) Binary[T, PT] {
	return Binary[T, PT]{Options: opts}
}
