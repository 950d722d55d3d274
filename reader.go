package binser

import (
	"encoding/binary"
	"errors"
	"io"
	"unicode/utf8"
)

// chunkSize bounds how much a single sequence or byte read allocates ahead of
// the data actually arriving.
const chunkSize = 64 << 10

// maxEmptyReads is how many consecutive zero-byte, nil-error reads fill
// tolerates before giving up with io.ErrNoProgress.
const maxEmptyReads = 100

// Reader decodes values from an io.Reader. Short reads from the underlying
// reader are retried until the value is complete. Running out of data is
// reported as ErrEndOfStream. A reader that keeps returning no data and no
// error fails with io.ErrNoProgress. Any other read error is returned
// unchanged. A Reader must not be used from more than one goroutine at a time.
type Reader struct {
	r    io.Reader
	opts Options
	buf  [16]byte
}

// NewReader returns a Reader with default Options.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// NewReaderOptions returns a Reader configured by opts.
func NewReaderOptions(r io.Reader, opts Options) *Reader {
	return &Reader{r: r, opts: opts}
}

func (r *Reader) fill(b []byte) error {
	empty := 0
	for n := 0; n < len(b); {
		m, err := r.r.Read(b[n:])
		n += m
		if n == len(b) {
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return ErrEndOfStream
			}
			return err
		}
		if m > 0 {
			empty = 0
			continue
		}
		if empty++; empty >= maxEmptyReads {
			return io.ErrNoProgress
		}
	}
	return nil
}

// ReadBool reads one byte; any nonzero value is true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

// ReadByte reads one raw byte.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.fill(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.fill(r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[:2]), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.fill(r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[:4]), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.fill(r.buf[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.buf[:8]), nil
}

// ReadString reads a uint16 length and that many bytes of UTF-8.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	b := make([]byte, n)
	if err := r.fill(b); err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrMalformedText
	}
	return string(b), nil
}

// ReadCount reads an int32 sequence count. Negative counts yield
// ErrInvalidCount; counts above Options.MaxCount yield a *LengthError.
func (r *Reader) ReadCount() (int, error) {
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	return r.checkCount(int(v))
}

func (r *Reader) checkCount(n int) (int, error) {
	if n < 0 {
		return 0, ErrInvalidCount
	}
	if r.opts.MaxCount > 0 && n > r.opts.MaxCount {
		return 0, &LengthError{What: "sequence", Len: n, Max: r.opts.MaxCount}
	}
	return n, nil
}

// ReadBytes reads count raw bytes. A negative count (CountFromStream) reads
// the int32 count from the stream first.
func (r *Reader) ReadBytes(count int) ([]byte, error) {
	n, err := r.resolveCount(count)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, min(n, chunkSize))
	for len(out) < n {
		step := min(n-len(out), chunkSize)
		out = append(out, make([]byte, step)...)
		if err := r.fill(out[len(out)-step:]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Reader) resolveCount(count int) (int, error) {
	if count < 0 {
		return r.ReadCount()
	}
	return r.checkCount(count)
}
