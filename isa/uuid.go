package isa

import (
	"context"

	"github.com/google/uuid"
	"github.com/pumpkindb/pumpkindb"
)

func init() {
	reg("UUID", true, uuidNew)
	reg("UUID/STRING->", true, uuidFromString)
	reg("UUID/->STRING", true, uuidToString)
}

func uuidNew(_ context.Context, env *pumpkindb.Environment) error {
	id := uuid.New()
	b, err := id.MarshalBinary()
	if err != nil {
		return pumpkindb.NewInvalidValue(nil)
	}
	env.Stack.Push(pumpkindb.Value(b))
	return nil
}

func uuidFromString(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	id, parseErr := uuid.Parse(string(v))
	if parseErr != nil {
		return pumpkindb.NewInvalidValue(v)
	}
	b, err := id.MarshalBinary()
	if err != nil {
		return pumpkindb.NewInvalidValue(v)
	}
	env.Stack.Push(pumpkindb.Value(b))
	return nil
}

func uuidToString(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	var id uuid.UUID
	if unmarshalErr := id.UnmarshalBinary(v); unmarshalErr != nil {
		return pumpkindb.NewInvalidValue(v)
	}
	env.Stack.Push(pumpkindb.Value(id.String()))
	return nil
}
