// Package wire frames store entries. Frames are written with the binser codec:
//
//	single: magic(4) | ver(1) | kind(1=single) | payload(int32 count + bytes)
//	batch:  magic(4) | ver(1) | kind(2=batch)  | n(int32) | {key(string) | rev(u64) | payload(bytes)} * n
package wire

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/unkn0wn-root/binser"
)

const (
	version    byte = 1
	kindSingle byte = 1
	kindBatch  byte = 2

	headerLen = 4 + 1 + 1
)

var (
	ErrCorrupt  = errors.New("binser/wire: corrupt entry")
	ErrEmptyKey = errors.New("binser/wire: empty key in batch")

	magic4 = [...]byte{'B', 'S', 'E', 'R'}
)

// BatchItem is one keyed payload of a batch frame, stamped with the key's
// revision at the time the batch was built.
type BatchItem struct {
	Key     string
	Rev     uint64
	Payload []byte
}

// CheckKey reports why key cannot be carried in a batch frame, or nil.
func CheckKey(key string) error {
	switch {
	case key == "":
		return ErrEmptyKey
	case len(key) > math.MaxUint16:
		return &binser.LengthError{What: "string", Len: len(key), Max: math.MaxUint16}
	case !utf8.ValidString(key):
		return binser.ErrMalformedText
	}
	return nil
}

func (it *BatchItem) Serialize(w *binser.Writer) error {
	if err := CheckKey(it.Key); err != nil {
		return err
	}
	if err := w.WriteString(it.Key); err != nil {
		return err
	}
	if err := w.WriteUint64(it.Rev); err != nil {
		return err
	}
	return w.WriteBytes(it.Payload)
}

func (it *BatchItem) Deserialize(r *binser.Reader) (err error) {
	if it.Key, err = r.ReadString(); err != nil {
		return err
	}
	if it.Key == "" {
		return ErrEmptyKey
	}
	if it.Rev, err = r.ReadUint64(); err != nil {
		return err
	}
	it.Payload, err = r.ReadBytes(binser.CountFromStream)
	return err
}

func writeHeader(w *binser.Writer, kind byte) error {
	if err := w.WriteRaw(magic4[:]); err != nil {
		return err
	}
	if err := w.WriteByte(version); err != nil {
		return err
	}
	return w.WriteByte(kind)
}

// openFrame checks the header and returns a reader over the body. Counts in
// the body can never exceed the frame length, so they are bounded by it.
func openFrame(b []byte, kind byte) (*binser.Reader, *bytes.Reader, error) {
	if len(b) < headerLen || !bytes.Equal(b[:4], magic4[:]) || b[4] != version || b[5] != kind {
		return nil, nil, ErrCorrupt
	}
	br := bytes.NewReader(b[headerLen:])
	return binser.NewReaderOptions(br, binser.Options{MaxCount: len(b)}), br, nil
}

func corrupt(err error) error {
	return fmt.Errorf("%w: %w", ErrCorrupt, err)
}

func EncodeSingle(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(headerLen + 4 + len(payload))
	w := binser.NewWriter(&buf)
	if err := writeHeader(w, kindSingle); err != nil {
		return nil, err
	}
	if err := w.WriteBytes(payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeSingle(b []byte) ([]byte, error) {
	r, br, err := openFrame(b, kindSingle)
	if err != nil {
		return nil, err
	}
	payload, err := r.ReadBytes(binser.CountFromStream)
	if err != nil {
		return nil, corrupt(err)
	}
	if br.Len() != 0 {
		return nil, corrupt(binser.ErrTrailingData)
	}
	return payload, nil
}

func EncodeBatch(items []BatchItem) ([]byte, error) {
	total := headerLen + 4
	for _, it := range items {
		total += 2 + len(it.Key) + 8 + 4 + len(it.Payload)
	}
	var buf bytes.Buffer
	buf.Grow(total)

	w := binser.NewWriter(&buf)
	if err := writeHeader(w, kindBatch); err != nil {
		return nil, err
	}
	if err := binser.WriteValues(w, items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeBatch(b []byte) ([]BatchItem, error) {
	r, br, err := openFrame(b, kindBatch)
	if err != nil {
		return nil, err
	}
	items, err := binser.ReadValues[BatchItem](r, binser.CountFromStream)
	if err != nil {
		return nil, corrupt(err)
	}
	if br.Len() != 0 {
		return nil, corrupt(binser.ErrTrailingData)
	}
	return items, nil
}
