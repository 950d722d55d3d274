package binser

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDRoundTrip(t *testing.T) {
	var ff uuid.UUID
	for i := range ff {
		ff[i] = 0xFF
	}
	cases := []uuid.UUID{uuid.Nil, ff, uuid.New(), uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff")}
	for _, layout := range []UUIDLayout{UUIDLayoutRFC4122, UUIDLayoutMixedEndian} {
		opts := Options{UUIDLayout: layout}
		for _, u := range cases {
			var buf bytes.Buffer
			if err := NewWriterOptions(&buf, opts).WriteUUID(u); err != nil {
				t.Fatal(err)
			}
			if buf.Len() != 16 {
				t.Fatalf("encoded %d bytes, want 16", buf.Len())
			}
			got, err := NewReaderOptions(&buf, opts).ReadUUID()
			if err != nil || got != u {
				t.Fatalf("layout %d: got %v err=%v want %v", layout, got, err, u)
			}
		}
	}
}

func TestUUIDLayouts(t *testing.T) {
	u := uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff")

	var buf bytes.Buffer
	_ = NewWriter(&buf).WriteUUID(u)
	if !bytes.Equal(buf.Bytes(), u[:]) {
		t.Fatalf("rfc4122 layout % x", buf.Bytes())
	}

	buf.Reset()
	_ = NewWriterOptions(&buf, Options{UUIDLayout: UUIDLayoutMixedEndian}).WriteUUID(u)
	want := []byte{0x33, 0x22, 0x11, 0x00, 0x55, 0x44, 0x77, 0x66, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("mixed-endian layout % x, want % x", buf.Bytes(), want)
	}
}
