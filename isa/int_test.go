package isa

import (
	"context"
	"testing"

	"github.com/pumpkindb/pumpkindb"
	"github.com/stretchr/testify/assert"
)

func TestIntAddPositiveAndNegative(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte{0x01, 5}, []byte{0x00, 2}, "INT/ADD"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value{0x01, 3}, v)
}

// TestIntSubAntisymmetric checks INT/SUB a b = -(INT/SUB b a).
func TestIntSubAntisymmetric(t *testing.T) {
	a := []byte{0x01, 7}
	b := []byte{0x01, 2}

	env := newEnv()
	run(t, env, program(a, b, "INT/SUB"))
	ab, err := env.Stack.Pop()
	assert.NoError(t, err)

	env = newEnv()
	run(t, env, program(b, a, "INT/SUB"))
	ba, err := env.Stack.Pop()
	assert.NoError(t, err)

	assert.Equal(t, pumpkindb.Value{0x01, 5}, ab)
	assert.Equal(t, pumpkindb.Value{0x00, 5}, ba)
}

func TestIntComparisons(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte{0x00, 3}, []byte{0x01, 1}, "INT/LT?"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)

	env = newEnv()
	run(t, env, program([]byte{0x01, 1}, []byte{0x01, 1}, "INT/EQUAL?"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)

	env = newEnv()
	run(t, env, program([]byte{0x01, 5}, []byte{0x00, 5}, "INT/GT?"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)
}

func TestIntUintConversions(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte{0x01, 9}, "INT/INT->UINT"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value{9}, v)

	env = newEnv()
	err = env.Eval(context.Background(), program([]byte{0x00, 9}, "INT/INT->UINT"))
	assert.Error(t, err)

	env = newEnv()
	run(t, env, program([]byte{9}, "INT/UINT->INT"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value{0x01, 9}, v)
}

func TestIntStringRoundTrip(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte{0x00, 42}, "INT/->STRING"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value("-42"), v)

	env = newEnv()
	run(t, env, program([]byte("-42"), "STRING/->INT"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value{0x00, 42}, v)
}
