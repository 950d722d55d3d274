package binser

import "time"

// UUIDLayout selects the byte order used for 16-byte identifiers.
type UUIDLayout uint8

const (
	// UUIDLayoutRFC4122 writes the UUID bytes exactly as uuid.UUID holds them.
	UUIDLayoutRFC4122 UUIDLayout = iota
	// UUIDLayoutMixedEndian swaps the first three groups (4, 2 and 2 bytes) into
	// little-endian order, matching the GUID byte layout of .NET peers.
	UUIDLayoutMixedEndian
)

// Options tune a Reader or Writer. The zero value is ready to use.
type Options struct {
	// Location decoded times are presented in. nil => time.Local.
	Location *time.Location
	// UUIDLayout must match on both ends of a channel.
	UUIDLayout UUIDLayout
	// MaxCount caps sequence counts read from the stream; 0 => no cap.
	MaxCount int
}

func (o Options) location() *time.Location {
	return coalesce[*time.Location](o.Location, time.Local)
}
