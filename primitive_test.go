package binser

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
	"testing/iotest"
)

func TestUint16LittleEndian(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteUint16(511); err != nil {
		t.Fatalf("WriteUint16: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xFF, 0x01}) {
		t.Fatalf("encoded % x, want ff 01", buf.Bytes())
	}
	v, err := NewReader(bytes.NewReader([]byte{0xFF, 0x01})).ReadUint16()
	if err != nil || v != 511 {
		t.Fatalf("ReadUint16 = %d, %v; want 511", v, err)
	}
}

func TestIntegerRoundTripLimits(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	steps := []error{
		w.WriteInt16(math.MinInt16), w.WriteInt16(math.MaxInt16),
		w.WriteUint16(0), w.WriteUint16(math.MaxUint16),
		w.WriteInt32(math.MinInt32), w.WriteInt32(math.MaxInt32),
		w.WriteUint32(0), w.WriteUint32(math.MaxUint32),
		w.WriteInt64(math.MinInt64), w.WriteInt64(math.MaxInt64),
		w.WriteUint64(0), w.WriteUint64(math.MaxUint64),
		w.WriteByte(0x7F), w.WriteBool(true), w.WriteBool(false),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if want := 2*4 + 4*4 + 8*4 + 3; buf.Len() != want {
		t.Fatalf("encoded %d bytes, want %d", buf.Len(), want)
	}

	r := NewReader(&buf)
	must := func(ok bool, what string) {
		t.Helper()
		if !ok {
			t.Fatalf("%s mismatch", what)
		}
	}
	i16a, _ := r.ReadInt16()
	i16b, _ := r.ReadInt16()
	must(i16a == math.MinInt16 && i16b == math.MaxInt16, "int16")
	u16a, _ := r.ReadUint16()
	u16b, _ := r.ReadUint16()
	must(u16a == 0 && u16b == math.MaxUint16, "uint16")
	i32a, _ := r.ReadInt32()
	i32b, _ := r.ReadInt32()
	must(i32a == math.MinInt32 && i32b == math.MaxInt32, "int32")
	u32a, _ := r.ReadUint32()
	u32b, _ := r.ReadUint32()
	must(u32a == 0 && u32b == math.MaxUint32, "uint32")
	i64a, _ := r.ReadInt64()
	i64b, _ := r.ReadInt64()
	must(i64a == math.MinInt64 && i64b == math.MaxInt64, "int64")
	u64a, _ := r.ReadUint64()
	u64b, _ := r.ReadUint64()
	must(u64a == 0 && u64b == math.MaxUint64, "uint64")
	b, _ := r.ReadByte()
	must(b == 0x7F, "byte")
	t1, _ := r.ReadBool()
	t2, err := r.ReadBool()
	must(t1 && !t2 && err == nil, "bool")

	if _, err := r.ReadByte(); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("read past end: got %v, want ErrEndOfStream", err)
	}
}

func TestBoolWritesZeroOrOne(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_ = w.WriteBool(true)
	_ = w.WriteBool(false)
	if !bytes.Equal(buf.Bytes(), []byte{1, 0}) {
		t.Fatalf("encoded % x, want 01 00", buf.Bytes())
	}
}

func TestBoolDecodeIsLenient(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x00, 0x01, 0x02, 0xFF}))
	want := []bool{false, true, true, true}
	for i, w := range want {
		got, err := r.ReadBool()
		if err != nil {
			t.Fatalf("ReadBool %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("ReadBool %d = %v, want %v", i, got, w)
		}
	}
}

func TestTruncatedIntegerIsEndOfStream(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		read func(*Reader) error
	}{
		{"int32 with 2 bytes", []byte{1, 2}, func(r *Reader) error { _, err := r.ReadInt32(); return err }},
		{"int64 with 7 bytes", []byte{1, 2, 3, 4, 5, 6, 7}, func(r *Reader) error { _, err := r.ReadInt64(); return err }},
		{"uint16 empty", nil, func(r *Reader) error { _, err := r.ReadUint16(); return err }},
		{"bool empty", nil, func(r *Reader) error { _, err := r.ReadBool(); return err }},
		{"uuid with 15 bytes", make([]byte, 15), func(r *Reader) error { _, err := r.ReadUUID(); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read(NewReader(bytes.NewReader(tc.in)))
			if !errors.Is(err, ErrEndOfStream) {
				t.Fatalf("got %v, want ErrEndOfStream", err)
			}
		})
	}
}

func TestChunkedReadsMatchWholeReads(t *testing.T) {
	d := sampleDirectory()
	enc, err := Marshal(&d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	readers := map[string]func() io.Reader{
		"whole":    func() io.Reader { return bytes.NewReader(enc) },
		"one byte": func() io.Reader { return iotest.OneByteReader(bytes.NewReader(enc)) },
		"half":     func() io.Reader { return iotest.HalfReader(bytes.NewReader(enc)) },
		"data+err": func() io.Reader { return iotest.DataErrReader(bytes.NewReader(enc)) },
	}
	for name, mk := range readers {
		t.Run(name, func(t *testing.T) {
			got, err := ReadValue[directory](NewReader(mk()))
			if err != nil {
				t.Fatalf("ReadValue: %v", err)
			}
			if !got.equal(d) {
				t.Fatalf("decoded %+v, want %+v", got, d)
			}
		})
	}
}

func TestReaderErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := NewReader(iotest.ErrReader(boom)).ReadInt32()
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
	if errors.Is(err, ErrEndOfStream) {
		t.Fatalf("transport error must not be reported as end of stream")
	}
}

// stallReader returns (0, nil) stalls times between the one-byte reads it serves.
// A negative stalls never serves data.
type stallReader struct {
	data   []byte
	stalls int
	left   int
	calls  int
}

func (s *stallReader) Read(p []byte) (int, error) {
	s.calls++
	if s.stalls < 0 {
		return 0, nil
	}
	if s.left > 0 {
		s.left--
		return 0, nil
	}
	if len(s.data) == 0 {
		return 0, io.EOF
	}
	s.left = s.stalls
	n := copy(p[:1], s.data)
	s.data = s.data[n:]
	return n, nil
}

func TestReaderWithoutProgressFails(t *testing.T) {
	sr := &stallReader{stalls: -1}
	_, err := NewReader(sr).ReadInt32()
	if !errors.Is(err, io.ErrNoProgress) {
		t.Fatalf("got %v, want io.ErrNoProgress", err)
	}
	if sr.calls != maxEmptyReads {
		t.Fatalf("gave up after %d reads, want %d", sr.calls, maxEmptyReads)
	}
}

func TestReaderToleratesOccasionalEmptyReads(t *testing.T) {
	// every read after the first is preceded by empty reads just under the limit
	sr := &stallReader{data: []byte{0x78, 0x56, 0x34, 0x12}, stalls: maxEmptyReads - 1}
	got, err := NewReader(sr).ReadUint32()
	if err != nil || got != 0x12345678 {
		t.Fatalf("got %#x err=%v", got, err)
	}
	if _, err := NewReader(sr).ReadByte(); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("drained: got %v, want ErrEndOfStream", err)
	}
}

type failWriter struct {
	err error
	n   int // bytes accepted per call; -1 => all
}

func (f failWriter) Write(p []byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.n >= 0 && f.n < len(p) {
		return f.n, nil
	}
	return len(p), nil
}

func TestWriterErrors(t *testing.T) {
	boom := errors.New("broken pipe")
	if err := NewWriter(failWriter{err: boom}).WriteInt64(1); !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
	if err := NewWriter(failWriter{n: 1}).WriteUint32(7); !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("got %v, want io.ErrShortWrite", err)
	}
}
