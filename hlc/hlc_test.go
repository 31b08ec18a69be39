package hlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNowMonotonic(t *testing.T) {
	var last Timestamp
	for i := 0; i < 1000; i++ {
		ts := Now()
		assert.True(t, last.Less(ts))
		last = ts
	}
}

func TestTick(t *testing.T) {
	ts := Timestamp{Wall: 100, Count: 5}
	ticked := ts.Tick()
	assert.Equal(t, ts.Wall, ticked.Wall)
	assert.Equal(t, ts.Count+1, ticked.Count)
	assert.True(t, ts.Less(ticked))
}

func TestLessOrdering(t *testing.T) {
	a := Timestamp{Wall: 1, Count: 5}
	b := Timestamp{Wall: 2, Count: 0}
	c := Timestamp{Wall: 1, Count: 6}

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, a.Less(c))
	assert.False(t, a.Less(a))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ts := Timestamp{Wall: 123456789, Count: 42}
	decoded, ok := Decode(ts.Encode())
	assert.True(t, ok)
	assert.Equal(t, ts, decoded)
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, ok := Decode([]byte{1, 2, 3})
	assert.False(t, ok)
}

func TestObserveAdvancesPastSeen(t *testing.T) {
	seen := Timestamp{Wall: uint64(1) << 62, Count: 10}
	Observe(seen)

	next := Now()
	assert.True(t, seen.Less(next))
}

func TestObserveDoesNotRewind(t *testing.T) {
	ahead := Now()
	for i := 0; i < 10; i++ {
		ahead = ahead.Tick()
	}

	Observe(ahead)
	next := Now()
	assert.True(t, ahead.Less(next))
}
