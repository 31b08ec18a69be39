package pumpkindb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pushAll(s *Stack, vs ...string) {
	for _, v := range vs {
		s.Push(Value(v))
	}
}

func strs(vs []Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

func TestStackDup(t *testing.T) {
	s := NewStack()
	pushAll(s, "a")
	assert.NoError(t, s.Dup())
	assert.Equal(t, []string{"a", "a"}, strs(s.All()))
}

func TestStackSwap(t *testing.T) {
	s := NewStack()
	pushAll(s, "a", "b")
	assert.NoError(t, s.Swap())
	assert.Equal(t, []string{"b", "a"}, strs(s.All()))
}

func TestStackRot(t *testing.T) {
	s := NewStack()
	pushAll(s, "a", "b", "c")
	assert.NoError(t, s.Rot())
	assert.Equal(t, []string{"b", "c", "a"}, strs(s.All()))
}

func TestStackRevRot(t *testing.T) {
	s := NewStack()
	pushAll(s, "a", "b", "c")
	assert.NoError(t, s.RevRot())
	assert.Equal(t, []string{"c", "a", "b"}, strs(s.All()))
}

func TestStackOver(t *testing.T) {
	s := NewStack()
	pushAll(s, "a", "b")
	assert.NoError(t, s.Over())
	assert.Equal(t, []string{"a", "b", "a"}, strs(s.All()))
}

func TestStackNip(t *testing.T) {
	s := NewStack()
	pushAll(s, "a", "b")
	assert.NoError(t, s.Nip())
	assert.Equal(t, []string{"b"}, strs(s.All()))
}

func TestStackTuck(t *testing.T) {
	s := NewStack()
	pushAll(s, "a", "b")
	assert.NoError(t, s.Tuck())
	assert.Equal(t, []string{"b", "a", "b"}, strs(s.All()))
}

// TestStackTuckN covers the minimal valid input for 2TUCK: it must not panic
// and must produce `b1 b2 a1 a2 b1 b2`.
func TestStackTuckN(t *testing.T) {
	s := NewStack()
	pushAll(s, "a1", "a2", "b1", "b2")
	assert.NoError(t, s.TuckN(2))
	assert.Equal(t, []string{"b1", "b2", "a1", "a2", "b1", "b2"}, strs(s.All()))
}

func TestStackTuckNWithPrefix(t *testing.T) {
	s := NewStack()
	pushAll(s, "x", "a1", "a2", "b1", "b2")
	assert.NoError(t, s.TuckN(2))
	assert.Equal(t, []string{"x", "b1", "b2", "a1", "a2", "b1", "b2"}, strs(s.All()))
}

func TestStackRotN(t *testing.T) {
	s := NewStack()
	pushAll(s, "a1", "a2", "b1", "b2", "c1", "c2")
	assert.NoError(t, s.RotN(2))
	assert.Equal(t, []string{"b1", "b2", "c1", "c2", "a1", "a2"}, strs(s.All()))
}

func TestStackOverN(t *testing.T) {
	s := NewStack()
	pushAll(s, "a1", "a2", "b1", "b2")
	assert.NoError(t, s.OverN(2))
	assert.Equal(t, []string{"a1", "a2", "b1", "b2", "a1", "a2"}, strs(s.All()))
}

func TestStackNipN(t *testing.T) {
	s := NewStack()
	pushAll(s, "a1", "a2", "b1", "b2")
	assert.NoError(t, s.NipN(2))
	assert.Equal(t, []string{"b1", "b2"}, strs(s.All()))
}

func TestStackConcat(t *testing.T) {
	s := NewStack()
	pushAll(s, "foo", "bar")
	assert.NoError(t, s.Concat())
	assert.Equal(t, []string{"foobar"}, strs(s.All()))
}

func TestStackWrapUnwrapRoundTrip(t *testing.T) {
	s := NewStack()
	pushAll(s, "a", "b", "c")
	assert.NoError(t, s.Wrap(3))
	assert.Equal(t, 1, s.Depth())

	wrapped, err := s.Pop()
	assert.NoError(t, err)

	assert.NoError(t, s.Unwrap(wrapped))
	assert.Equal(t, []string{"a", "b", "c"}, strs(s.All()))
}

func TestStackEmptyErrors(t *testing.T) {
	s := NewStack()
	assert.Error(t, s.Drop())
	assert.Error(t, s.Swap())
	assert.Error(t, s.Rot())
	assert.Error(t, s.TuckN(2))
	_, err := s.Pop()
	assert.Error(t, err)
}
