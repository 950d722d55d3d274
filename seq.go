package binser

import "unsafe"

// CountFromStream tells the sequence readers to read the count from the stream.
// Any non-negative count is used as-is, for sequences whose length was already
// encoded elsewhere (for example in an enclosing record header).
const CountFromStream = -1

// WriteSeq writes len(items) as an int32 count followed by every element
// encoded by enc. Method expressions make the common cases short:
//
//	binser.WriteSeq(w, names, (*binser.Writer).WriteString)
func WriteSeq[T any](w *Writer, items []T, enc func(*Writer, T) error) error {
	if err := w.WriteCount(len(items)); err != nil {
		return err
	}
	return WriteEach(w, items, enc)
}

// WriteEach writes the elements without a count.
func WriteEach[T any](w *Writer, items []T, enc func(*Writer, T) error) error {
	for _, it := range items {
		if err := enc(w, it); err != nil {
			return err
		}
	}
	return nil
}

// ReadSeq reads count elements with dec, or reads the count first when
// count is CountFromStream. The first element error is returned unchanged.
//
//	names, err := binser.ReadSeq(r, binser.CountFromStream, (*binser.Reader).ReadString)
func ReadSeq[T any](r *Reader, count int, dec func(*Reader) (T, error)) ([]T, error) {
	n, err := r.resolveCount(count)
	if err != nil {
		return nil, err
	}
	// n is untrusted: reserve at most chunkSize bytes and grow as elements arrive
	var zero T
	perChunk := max(1, chunkSize/max(1, int(unsafe.Sizeof(zero))))
	out := make([]T, 0, min(n, perChunk))
	for i := 0; i < n; i++ {
		v, err := dec(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
