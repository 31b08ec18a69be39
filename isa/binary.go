package isa

import (
	"context"

	"github.com/pumpkindb/pumpkindb"
)

func init() {
	reg("EQUAL?", true, rawEqual)
	reg("LT?", true, rawLT)
	reg("GT?", true, rawGT)
	reg("AND", true, boolAnd)
	reg("OR", true, boolOr)
	reg("NOT", true, boolNot)
}

func popRawPair(env *pumpkindb.Environment) (pumpkindb.Value, pumpkindb.Value, error) {
	b, err := env.Stack.Pop()
	if err != nil {
		return nil, nil, err
	}
	a, err := env.Stack.Pop()
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func rawEqual(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popRawPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(a.Equal(b)))
	return nil
}

func rawLT(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popRawPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(a.Less(b)))
	return nil
}

func rawGT(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popRawPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(b.Less(a)))
	return nil
}

func boolAnd(_ context.Context, env *pumpkindb.Environment) error {
	b, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	av, err := pumpkindb.AsBool(a)
	if err != nil {
		return err
	}
	bv, err := pumpkindb.AsBool(b)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(av && bv))
	return nil
}

func boolOr(_ context.Context, env *pumpkindb.Environment) error {
	b, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	av, err := pumpkindb.AsBool(a)
	if err != nil {
		return err
	}
	bv, err := pumpkindb.AsBool(b)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(av || bv))
	return nil
}

func boolNot(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	b, err := pumpkindb.AsBool(v)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(!b))
	return nil
}
