package binser

import (
	"fmt"
	"time"
)

// Times travel as int64 ticks of 100ns since 0001-01-01T00:00:00Z, the
// timescale used by the .NET peers of the sync protocol. The zero time.Time
// encodes as tick 0.
const (
	ticksPerSecond = 10_000_000
	nanosPerTick   = 100
	// seconds between 0001-01-01 and 1970-01-01, both UTC
	unixEpochSeconds = 62_135_596_800
	// 9999-12-31T23:59:59.9999999Z
	maxTicks = 3_155_378_975_999_999_999
)

var (
	minTime = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	maxTime = time.Date(9999, 12, 31, 23, 59, 59, 999_999_999, time.UTC)
)

// TimeToTicks converts t to ticks. Precision below 100ns is truncated.
// Only instants from 0001-01-01 through 9999-12-31 UTC have a tick value;
// outside that range the result is meaningless. WriteTime checks the range.
func TimeToTicks(t time.Time) int64 {
	return (t.Unix()+unixEpochSeconds)*ticksPerSecond + int64(t.Nanosecond()/nanosPerTick)
}

// TicksToTime converts ticks back to an instant in UTC.
func TicksToTime(ticks int64) time.Time {
	sec, rem := ticks/ticksPerSecond, ticks%ticksPerSecond
	if rem < 0 {
		sec--
		rem += ticksPerSecond
	}
	return time.Unix(sec-unixEpochSeconds, rem*nanosPerTick).UTC()
}

// WriteTime writes t as ticks. The instant is encoded, not the wall clock of
// t's location. Instants outside years 1 through 9999 fail with
// ErrTimeOutOfRange and nothing is written.
func (w *Writer) WriteTime(t time.Time) error {
	if t.Before(minTime) || t.After(maxTime) {
		return fmt.Errorf("%w: %s", ErrTimeOutOfRange, t.UTC().Format(time.RFC3339Nano))
	}
	return w.WriteInt64(TimeToTicks(t))
}

// ReadTime reads ticks and returns the instant in Options.Location.
func (r *Reader) ReadTime() (time.Time, error) {
	ticks, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}
	if ticks < 0 || ticks > maxTicks {
		return time.Time{}, fmt.Errorf("%w: %d ticks", ErrTimeOutOfRange, ticks)
	}
	return TicksToTime(ticks).In(r.opts.location()), nil
}
