package isa

import (
	"crypto/sha256"
	"testing"

	"github.com/pumpkindb/pumpkindb"
	"github.com/stretchr/testify/assert"
)

func TestHashSHA256MatchesStdlib(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte("hello"), "HASH/SHA256"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)

	want := sha256.Sum256([]byte("hello"))
	assert.Equal(t, pumpkindb.Value(want[:]), v)
}

func TestHashSHA1Length(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte("hello"), "HASH/SHA1"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Len(t, v, 20)
}

func TestHashSHA512Length(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte("hello"), "HASH/SHA512"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Len(t, v, 64)
}

func TestHashBlake2bLength(t *testing.T) {
	env := newEnv()
	run(t, env, program([]byte("hello"), "HASH/BLAKE2B"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Len(t, v, 32)
}
