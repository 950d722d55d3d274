package binser

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Writer encodes values onto an io.Writer. Every call writes the complete
// encoding of one value or returns an error; nothing is buffered between calls.
// A Writer must not be used from more than one goroutine at a time.
type Writer struct {
	w    io.Writer
	opts Options
	buf  [16]byte
}

// NewWriter returns a Writer with default Options.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// NewWriterOptions returns a Writer configured by opts.
func NewWriterOptions(w io.Writer, opts Options) *Writer {
	return &Writer{w: w, opts: opts}
}

func (w *Writer) write(b []byte) error {
	n, err := w.w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}

// WriteBool writes 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) error {
	w.buf[0] = 0
	if v {
		w.buf[0] = 1
	}
	return w.write(w.buf[:1])
}

// WriteByte writes one raw byte.
func (w *Writer) WriteByte(v byte) error {
	w.buf[0] = v
	return w.write(w.buf[:1])
}

func (w *Writer) WriteInt16(v int16) error { return w.WriteUint16(uint16(v)) }
func (w *Writer) WriteInt32(v int32) error { return w.WriteUint32(uint32(v)) }
func (w *Writer) WriteInt64(v int64) error { return w.WriteUint64(uint64(v)) }

func (w *Writer) WriteUint16(v uint16) error {
	binary.LittleEndian.PutUint16(w.buf[:2], v)
	return w.write(w.buf[:2])
}

func (w *Writer) WriteUint32(v uint32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	return w.write(w.buf[:4])
}

func (w *Writer) WriteUint64(v uint64) error {
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	return w.write(w.buf[:8])
}

// WriteString writes a uint16 byte length followed by the UTF-8 bytes of s.
// Oversized or non UTF-8 strings are rejected before anything is written.
func (w *Writer) WriteString(s string) error {
	if len(s) > math.MaxUint16 {
		return &LengthError{What: "string", Len: len(s), Max: math.MaxUint16}
	}
	if !utf8.ValidString(s) {
		return ErrMalformedText
	}
	if err := w.WriteUint16(uint16(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return w.write([]byte(s))
}

// WriteCount writes a sequence count as int32.
func (w *Writer) WriteCount(n int) error {
	if n < 0 {
		return ErrInvalidCount
	}
	if n > math.MaxInt32 {
		return &LengthError{What: "sequence", Len: n, Max: math.MaxInt32}
	}
	return w.WriteInt32(int32(n))
}

// WriteBytes writes an int32 count followed by b.
func (w *Writer) WriteBytes(b []byte) error {
	if err := w.WriteCount(len(b)); err != nil {
		return err
	}
	return w.WriteRaw(b)
}

// WriteRaw writes b without a count; the reader must know len(b).
func (w *Writer) WriteRaw(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return w.write(b)
}
