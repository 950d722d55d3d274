package binser

import "github.com/google/uuid"

// swapMixedEndian converts between RFC 4122 order and the mixed-endian GUID
// layout. The conversion is its own inverse.
func swapMixedEndian(b []byte) {
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	b[4], b[5] = b[5], b[4]
	b[6], b[7] = b[7], b[6]
}

// WriteUUID writes the 16 bytes of u in the configured layout.
func (w *Writer) WriteUUID(u uuid.UUID) error {
	copy(w.buf[:16], u[:])
	if w.opts.UUIDLayout == UUIDLayoutMixedEndian {
		swapMixedEndian(w.buf[:16])
	}
	return w.write(w.buf[:16])
}

// ReadUUID reads 16 bytes in the configured layout.
func (r *Reader) ReadUUID() (uuid.UUID, error) {
	var u uuid.UUID
	if err := r.fill(r.buf[:16]); err != nil {
		return u, err
	}
	if r.opts.UUIDLayout == UUIDLayoutMixedEndian {
		swapMixedEndian(r.buf[:16])
	}
	copy(u[:], r.buf[:16])
	return u, nil
}
