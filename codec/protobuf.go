package codec

import (
	"errors"

	"google.golang.org/protobuf/proto"
)

var errNoConstructor = errors.New("codec: protobuf constructor is nil")

// Protobuf encodes generated protobuf messages. Like binser records, a
// message is built empty by the constructor and then populated by Decode,
// e.g. NewProtobuf(func() *pb.FileEntry { return &pb.FileEntry{} }).
type Protobuf[T proto.Message] struct {
	new func() T
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

// Encode is deterministic so identical messages produce identical entries.
func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	if c.new == nil {
		var zero T
		return zero, errNoConstructor
	}
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
