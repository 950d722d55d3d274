// Package binser implements a symmetric binary codec for primitives, strings,
// sequences and user-defined composite records. It is the wire and disk format
// of a file synchronization application: a Writer streams values into any
// io.Writer and a Reader consumes them from any io.Reader in the same order.
//
// The format carries no type tags. The call site decides the type, so every
// encode call must be paired with exactly one decode call of the same kind:
//
//	w := binser.NewWriter(conn)
//	_ = w.WriteString("report.pdf")
//	_ = w.WriteInt64(size)
//
//	r := binser.NewReader(conn)
//	name, _ := r.ReadString()
//	size, _ := r.ReadInt64()
//
// Wire layout (little-endian):
//
//	bool          1 byte, 0 = false, nonzero = true
//	int16/uint16  2 bytes
//	int32/uint32  4 bytes
//	int64/uint64  8 bytes
//	string        uint16 length | UTF-8 bytes
//	bytes         int32 count | raw bytes
//	sequence<T>   int32 count | T... (count may be supplied by the caller instead)
//	time          int64 ticks (100ns since 0001-01-01 UTC)
//	uuid          16 raw bytes
//	record        its fields, in the order the type writes them
//
// Composite records implement Serializable and are read back with the generic
// helpers, which start from the zero value and let Deserialize populate it:
//
//	func (f *FileInfo) Serialize(w *binser.Writer) error     { ... }
//	func (f *FileInfo) Deserialize(r *binser.Reader) error   { ... }
//
//	files, err := binser.ReadValues[FileInfo](r, binser.CountFromStream)
//
// Decoded sequence counts come from the stream. Over untrusted channels set
// Options.MaxCount or check the count yourself before reading elements.
package binser
