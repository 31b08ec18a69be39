package isa

import (
	"context"
	"testing"

	"github.com/pumpkindb/pumpkindb"
	"github.com/stretchr/testify/assert"
)

func TestInt8SignExtension(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte{0xFF}, "INT8/->STRING"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value("-1"), v)
}

func TestInt16AddAndSub(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte{0x00, 0x05}, []byte{0x00, 0x03}, "INT16/ADD"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value{0x00, 0x08}, v)

	env = newEnv()
	run(t, env, program([]byte{0x00, 0x01}, []byte{0x00, 0x03}, "INT16/SUB", "INT16/->STRING"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value("-2"), v)
}

func TestU8UnderflowRejected(t *testing.T) {
	env := newEnv()
	err := env.Eval(context.Background(), program([]byte{1}, []byte{2}, "U8/SUB"))
	assert.Error(t, err)
}

func TestU32StringRoundTrip(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte{0x00, 0x00, 0x01, 0x00}, "U32/->STRING"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value("256"), v)

	env = newEnv()
	run(t, env, program([]byte("256"), "STRING/->U32"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value{0x00, 0x00, 0x01, 0x00}, v)
}

func TestF64AddAndCompare(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte("1.5"), "STRING/->F64", []byte("2.5"), "STRING/->F64", "F64/ADD", "F64/->STRING"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value("4"), v)
}

func TestF32LessThan(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte("1"), "STRING/->F32", []byte("2"), "STRING/->F32", "F32/LT?"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)
}
