package isa

import (
	"context"
	"math/big"

	"github.com/pumpkindb/pumpkindb"
)

func init() {
	reg("UINT/ADD", true, uintAdd)
	reg("UINT/SUB", true, uintSub)
	reg("UINT/EQUAL?", true, uintEqual)
	reg("UINT/LT?", true, uintLT)
	reg("UINT/GT?", true, uintGT)
	reg("UINT/->STRING", true, uintToString)
	reg("STRING/->UINT", true, stringToUint)
}

// toUint interprets v as UINT: big-endian unsigned, empty = 0.
func toUint(v pumpkindb.Value) *big.Int {
	return new(big.Int).SetBytes(v)
}

// fromUint renders n as its minimal big-endian UINT form (empty for zero).
func fromUint(n *big.Int) pumpkindb.Value {
	if n.Sign() == 0 {
		return pumpkindb.Value{}
	}
	return pumpkindb.Value(n.Bytes())
}

func popUintPair(env *pumpkindb.Environment) (*big.Int, *big.Int, error) {
	b, err := env.Stack.Pop()
	if err != nil {
		return nil, nil, err
	}
	a, err := env.Stack.Pop()
	if err != nil {
		return nil, nil, err
	}
	return toUint(a), toUint(b), nil
}

func uintAdd(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popUintPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(fromUint(new(big.Int).Add(a, b)))
	return nil
}

func uintSub(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popUintPair(env)
	if err != nil {
		return err
	}
	if a.Cmp(b) < 0 {
		return pumpkindb.NewInvalidValue(fromUint(b))
	}
	env.Stack.Push(fromUint(new(big.Int).Sub(a, b)))
	return nil
}

func uintEqual(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popUintPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(a.Cmp(b) == 0))
	return nil
}

func uintLT(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popUintPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(a.Cmp(b) < 0))
	return nil
}

func uintGT(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popUintPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(a.Cmp(b) > 0))
	return nil
}

func uintToString(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.Value(toUint(v).String()))
	return nil
}

func stringToUint(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	n, ok := new(big.Int).SetString(string(v), 10)
	if !ok || n.Sign() < 0 {
		return pumpkindb.NewInvalidValue(v)
	}
	env.Stack.Push(fromUint(n))
	return nil
}
