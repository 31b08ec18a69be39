package isa

import (
	"context"
	"testing"

	"github.com/pumpkindb/pumpkindb"
	"github.com/stretchr/testify/assert"
)

func TestJSONValid(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte(`{"a":1}`), "JSON?"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)

	env = newEnv()
	run(t, env, program([]byte(`not json`), "JSON?"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.False, v)
}

func TestJSONKindPredicates(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte(`{}`), "JSON/OBJECT?"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)

	env = newEnv()
	run(t, env, program([]byte(`[1,2]`), "JSON/ARRAY?"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)

	env = newEnv()
	run(t, env, program([]byte(`null`), "JSON/NULL?"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)
}

func TestJSONHasGetSet(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte(`{"a":1}`), []byte("a"), "JSON/HAS?"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)

	env = newEnv()
	run(t, env, program([]byte(`{"a":1}`), []byte("a"), "JSON/GET"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value("1"), v)

	env = newEnv()
	run(t, env, program([]byte(`{"a":1}`), []byte("b"), []byte(`2`), "JSON/SET"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":2}`, string(v))
}

func TestJSONGetUnknownKeyErrors(t *testing.T) {
	env := newEnv()
	err := env.Eval(context.Background(), program([]byte(`{}`), []byte("missing"), "JSON/GET"))
	assert.Error(t, err)
}

func TestJSONStringRoundTrip(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte("hi"), "JSON/STRING->"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value(`"hi"`), v)

	env.Stack.Push(v)
	run(t, env, program("JSON/->STRING"))
	s, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value("hi"), s)
}

func TestJSONEmpty(t *testing.T) {
	env := newEnv()
	run(t, env, program("JSON/EMPTY"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value("{}"), v)
}
