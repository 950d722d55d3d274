package binser

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfStream is returned when the channel ends before a value is complete,
	// including when no bytes at all are available.
	ErrEndOfStream = errors.New("binser: unexpected end of stream")

	// ErrValueTooLarge is the cause of every *LengthError.
	ErrValueTooLarge = errors.New("binser: value too large")

	// ErrMalformedText is returned for strings that are not valid UTF-8.
	ErrMalformedText = errors.New("binser: malformed UTF-8 text")

	// ErrInvalidCount is returned when a sequence count read from the stream is negative.
	ErrInvalidCount = errors.New("binser: invalid sequence count")

	// ErrTrailingData is returned by Unmarshal when bytes remain after the value.
	ErrTrailingData = errors.New("binser: trailing data after value")

	// ErrTimeOutOfRange is returned for instants before 0001-01-01 or after
	// 9999-12-31 UTC, on either side of the wire.
	ErrTimeOutOfRange = errors.New("binser: time outside 0001-01-01..9999-12-31")
)

// LengthError reports a length that does not fit its field or exceeds a
// caller-configured limit.
type LengthError struct {
	What string // "string", "sequence", "payload"
	Len  int
	Max  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("binser: %s length %d exceeds %d", e.What, e.Len, e.Max)
}

func (e *LengthError) Unwrap() error { return ErrValueTooLarge }
