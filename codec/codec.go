// Package codec adapts values to and from []byte for the record store.
//
// Binary is the native format: records implementing binser.Serializable,
// encoded with the binser wire rules. The other codecs (CBOR, Msgpack, JSON,
// Protobuf) exist for values that cross into tooling or services that
// expect a self-describing format. Limit wraps any of them with a size guard.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
