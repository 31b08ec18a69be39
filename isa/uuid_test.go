package isa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDIsSixteenBytes(t *testing.T) {
	env := newEnv()
	run(t, env, program("UUID"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Len(t, v, 16)
}

func TestUUIDStringRoundTrip(t *testing.T) {
	env := newEnv()
	run(t, env, program("UUID", "UUID/->STRING"))
	s, err := env.Stack.Pop()
	assert.NoError(t, err)

	env.Stack.Push(s)
	run(t, env, program("UUID/STRING->"))
	bin, err := env.Stack.Pop()
	assert.NoError(t, err)

	env.Stack.Push(bin)
	run(t, env, program("UUID/->STRING"))
	s2, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, s, s2)
}

func TestUUIDFromStringRejectsGarbage(t *testing.T) {
	env := newEnv()
	err := env.Eval(context.Background(), program([]byte("not-a-uuid"), "UUID/STRING->"))
	assert.Error(t, err)
}
