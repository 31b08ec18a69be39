package isa

import (
	"context"

	"github.com/pumpkindb/pumpkindb"
)

func init() {
	reg("TRACE", true, trace)
}

// trace writes the popped value to the environment's terminal sink, if one
// is attached. With no terminal attached the value is simply discarded
// (spec §4.9 marks TRACE as an optional, terminal-only diagnostic).
func trace(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	if env.Terminal == nil {
		return nil
	}
	_, writeErr := env.Terminal.Write(append([]byte(v), '\n'))
	return writeErr
}
