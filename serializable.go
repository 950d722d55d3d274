package binser

import "bytes"

// Serializable is implemented by composite records. Serialize writes the
// record's fields in a fixed order; Deserialize reads them back in the same
// order into the receiver. Errors from nested calls should be returned as-is.
type Serializable interface {
	Serialize(w *Writer) error
	Deserialize(r *Reader) error
}

// pointerTo constrains PT to *T implementing Serializable, so that the
// readers can start from a zero T and populate it through its pointer.
type pointerTo[T any] interface {
	*T
	Serializable
}

// WriteValue writes v by calling its Serialize method.
func WriteValue(w *Writer, v Serializable) error {
	return v.Serialize(w)
}

// ReadValue decodes one record into a zero T. On error the partially
// populated value is returned alongside it and must not be trusted.
func ReadValue[T any, PT pointerTo[T]](r *Reader) (T, error) {
	var v T
	err := PT(&v).Deserialize(r)
	return v, err
}

// WriteValues writes an int32 count and every record.
func WriteValues[T any, PT pointerTo[T]](w *Writer, items []T) error {
	if err := w.WriteCount(len(items)); err != nil {
		return err
	}
	for i := range items {
		if err := PT(&items[i]).Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// ReadValues reads count records, or the count first when count is
// CountFromStream.
func ReadValues[T any, PT pointerTo[T]](r *Reader, count int) ([]T, error) {
	return ReadSeq(r, count, ReadValue[T, PT])
}

// Marshal encodes v into a new byte slice.
func Marshal(v Serializable) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.Serialize(NewWriter(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalOptions is Marshal with a configured Writer.
func MarshalOptions(v Serializable, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.Serialize(NewWriterOptions(&buf, opts)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes b into v. Bytes left over after v is complete are
// reported as ErrTrailingData.
func Unmarshal(b []byte, v Serializable) error {
	return UnmarshalOptions(b, v, Options{})
}

// UnmarshalOptions is Unmarshal with a configured Reader.
func UnmarshalOptions(b []byte, v Serializable, opts Options) error {
	br := bytes.NewReader(b)
	if err := v.Deserialize(NewReaderOptions(br, opts)); err != nil {
		return err
	}
	if br.Len() > 0 {
		return ErrTrailingData
	}
	return nil
}
