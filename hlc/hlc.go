// Package hlc implements the process-wide Hybrid Logical Clock used by the
// HLC instruction family (spec.md §4.5). It is adapted from quasar's seq
// package, which generates locally-monotonic sequences from a mutex-guarded
// pair of (wall-clock bucket, ordinal counter); here the wall-clock bucket is
// nanosecond-resolution instead of second-resolution, and the ordinal is an
// explicit logical counter that can be advanced independently (HLC/TICK) or
// forced forward by an observed remote timestamp (HLC/OBSERVE).
package hlc

import (
	"encoding/binary"
	"sync"
	"time"
)

// Length is the encoded width of a Timestamp: 8 bytes wall-clock nanoseconds
// since Epoch, 4 bytes big-endian logical counter.
const Length = 12

// Epoch anchors the wall-clock component so that encoded values stay well
// clear of the 64-bit signed overflow boundary for the foreseeable future.
var Epoch = time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC)

// Timestamp is a 12-byte Hybrid Logical Clock value.
type Timestamp struct {
	Wall  uint64 // nanoseconds since Epoch, monotone-corrected
	Count uint32 // logical counter
}

// Encode writes the timestamp in its 12-byte wire form.
func (t Timestamp) Encode() []byte {
	buf := make([]byte, Length)
	binary.BigEndian.PutUint64(buf[0:8], t.Wall)
	binary.BigEndian.PutUint32(buf[8:12], t.Count)
	return buf
}

// Decode parses a 12-byte wire value into a Timestamp.
func Decode(b []byte) (Timestamp, bool) {
	if len(b) != Length {
		return Timestamp{}, false
	}
	return Timestamp{
		Wall:  binary.BigEndian.Uint64(b[0:8]),
		Count: binary.BigEndian.Uint32(b[8:12]),
	}, true
}

// Less reports whether t sorts strictly before o, comparing wall-clock first
// and breaking ties on the logical counter.
func (t Timestamp) Less(o Timestamp) bool {
	if t.Wall != o.Wall {
		return t.Wall < o.Wall
	}
	return t.Count < o.Count
}

// Tick returns a copy of t with the logical counter incremented, leaving the
// wall-clock component untouched (backs HLC/TICK).
func (t Timestamp) Tick() Timestamp {
	return Timestamp{Wall: t.Wall, Count: t.Count + 1}
}

var (
	mutex sync.Mutex
	last  Timestamp
)

// Now returns a fresh process-wide timestamp, strictly greater than any
// timestamp previously returned by Now or Observe (spec §3's HLC invariant).
// Cross-process uniqueness is not guaranteed; two processes may issue
// identical timestamps.
func Now() Timestamp {
	mutex.Lock()
	defer mutex.Unlock()

	wall := uint64(time.Since(Epoch).Nanoseconds())

	if wall > last.Wall {
		last = Timestamp{Wall: wall, Count: 0}
	} else {
		last = last.Tick()
	}

	return last
}

// Observe advances the process clock so that it is strictly greater than the
// provided timestamp, without itself counting as a new reading (backs
// HLC/OBSERVE).
func Observe(seen Timestamp) {
	mutex.Lock()
	defer mutex.Unlock()

	if seen.Less(last) || seen == last {
		return
	}

	last = seen.Tick()
}
