package isa

import (
	"context"
	"testing"

	"github.com/pumpkindb/pumpkindb"
	"github.com/stretchr/testify/assert"
)

// TestScenarioEmptyKeyLookup is scenario 1: a value written in one
// transaction is visible to a RETR in a later one.
func TestScenarioEmptyKeyLookup(t *testing.T) {
	env := newEngineEnv(t)
	run(t, env, program(program([]byte("k"), []byte("v"), "ASSOC", "COMMIT"), "WRITE"))
	run(t, env, program(program([]byte("k"), "RETR"), "READ"))

	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value("v"), v)
}

// TestScenarioDuplicateRejection is scenario 2: a second ASSOC of a
// committed key fails with DuplicateKey (0x06) on the second WRITE.
func TestScenarioDuplicateRejection(t *testing.T) {
	env := newEngineEnv(t)
	run(t, env, program(program([]byte("k"), []byte("v"), "ASSOC", "COMMIT"), "WRITE"))

	err := env.Eval(context.Background(), program(program([]byte("k"), []byte("w"), "ASSOC", "COMMIT"), "WRITE"))
	assert.Error(t, err)
	pe, ok := err.(*pumpkindb.Error)
	assert.True(t, ok)
	assert.Equal(t, pumpkindb.KindDuplicateKey, pe.Kind)
}

// TestScenarioCursorScan is scenario 3: positioning a cursor at the first
// key and reading its value.
func TestScenarioCursorScan(t *testing.T) {
	env := newEngineEnv(t)
	insert := program([]byte("a"), []byte("1"), "ASSOC", []byte("b"), []byte("2"), "ASSOC", "COMMIT")
	run(t, env, program(insert, "WRITE"))

	// CURSOR/FIRST and CURSOR/VAL both leave the cursor id on top of their
	// result value: SWAP+DROP after CURSOR/FIRST discards the flag and keeps
	// the id, and DROP after CURSOR/VAL discards the id and keeps the value.
	scan := program("CURSOR", "CURSOR/FIRST", "SWAP", "DROP", "CURSOR/VAL", "DROP")
	run(t, env, program(scan, "READ"))

	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value("1"), v)
}

// TestScenarioHLCOrdering is scenario 4: two consecutive HLC calls are
// strictly ordered.
func TestScenarioHLCOrdering(t *testing.T) {
	env := newEnv()
	run(t, env, program("HLC", "HLC", "LT?"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)
}

// TestScenarioTryCatchesEmptyStack is scenario 5: TRY catches the
// EmptyStack error from a closure that drops more than it pushed, and the
// caught closure's Kind byte is 0x04.
func TestScenarioTryCatchesEmptyStack(t *testing.T) {
	env := newEnv()
	failing := program([]byte{1}, "DROP", "DROP")
	run(t, env, program(failing, "TRY", "UNWRAP", []byte{byte(pumpkindb.KindEmptyStack)}, "EQUAL?"))

	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.True, v)
}

// TestScenarioIfElse is scenario 6: IFELSE selects the then-branch on
// truthy input and the else-branch otherwise.
func TestScenarioIfElse(t *testing.T) {
	then := program([]byte{0x20})
	els := program([]byte{0x30})

	env := newEnv()
	run(t, env, program([]byte{0x01}, then, els, "IFELSE"))
	v, err := env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value{0x20}, v)

	env = newEnv()
	run(t, env, program([]byte{0x00}, then, els, "IFELSE"))
	v, err = env.Stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, pumpkindb.Value{0x30}, v)
}
