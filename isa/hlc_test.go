package isa

import (
	"testing"

	"github.com/pumpkindb/pumpkindb"
	"github.com/stretchr/testify/assert"
)

func TestHLCNowThenTickIsGreater(t *testing.T) {
	env := newEnv()
	run(t, env, program("HLC"))
	now, err := env.Stack.Pop()
	assert.NoError(t, err)

	env.Stack.Push(now)
	run(t, env, program("HLC/TICK"))
	ticked, err := env.Stack.Pop()
	assert.NoError(t, err)

	env.Stack.Push(now)
	env.Stack.Push(ticked)
	run(t, env, program("HLC/LT?"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)
}

func TestHLCGTIsInverseOfLT(t *testing.T) {
	env := newEnv()
	run(t, env, program("HLC"))
	a, err := env.Stack.Pop()
	assert.NoError(t, err)
	env.Stack.Push(a)
	run(t, env, program("HLC/TICK"))
	b, err := env.Stack.Pop()
	assert.NoError(t, err)

	env.Stack.Push(b)
	env.Stack.Push(a)
	run(t, env, program("HLC/GT?"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)
}

func TestHLCLC(t *testing.T) {
	env := newEnv()
	run(t, env, program("HLC"))
	now, err := env.Stack.Pop()
	assert.NoError(t, err)

	env.Stack.Push(now)
	run(t, env, program("HLC/LC"))
	lc, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Len(t, lc, 4)
}

func TestHLCObserveAdvancesFutureNow(t *testing.T) {
	env := newEnv()
	run(t, env, program("HLC"))
	seen, err := env.Stack.Pop()
	assert.NoError(t, err)

	env.Stack.Push(seen)
	run(t, env, program("HLC/TICK", "HLC/TICK", "HLC/TICK"))
	ahead, err := env.Stack.Pop()
	assert.NoError(t, err)

	env.Stack.Push(ahead)
	run(t, env, program("HLC/OBSERVE"))

	run(t, env, program("HLC"))
	next, err := env.Stack.Pop()
	assert.NoError(t, err)

	env.Stack.Push(ahead)
	env.Stack.Push(next)
	run(t, env, program("HLC/LT?"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)
}
