package isa

import (
	"context"
	"math/big"

	"github.com/pumpkindb/pumpkindb"
)

func init() {
	reg("INT/ADD", true, intAdd)
	reg("INT/SUB", true, intSub)
	reg("INT/EQUAL?", true, intEqual)
	reg("INT/LT?", true, intLT)
	reg("INT/GT?", true, intGT)
	reg("INT/->STRING", true, intToString)
	reg("INT/INT->UINT", true, intToUint)
	reg("INT/UINT->INT", true, uintToInt)
	reg("STRING/->INT", true, stringToInt)
}

// toInt interprets v as INT: sign byte (0x00 negative, 0x01 non-negative)
// followed by the UINT magnitude.
func toInt(v pumpkindb.Value) (*big.Int, error) {
	if len(v) == 0 {
		return nil, pumpkindb.NewInvalidValue(v)
	}
	n := new(big.Int).SetBytes(v[1:])
	switch v[0] {
	case 0x00:
		return n.Neg(n), nil
	case 0x01:
		return n, nil
	default:
		return nil, pumpkindb.NewInvalidValue(v)
	}
}

// fromInt renders n in the sign-byte + UINT-magnitude convention.
func fromInt(n *big.Int) pumpkindb.Value {
	sign := byte(0x01)
	mag := n
	if n.Sign() < 0 {
		sign = 0x00
		mag = new(big.Int).Neg(n)
	}
	out := make(pumpkindb.Value, 1, 1+(mag.BitLen()+7)/8)
	out[0] = sign
	out = append(out, mag.Bytes()...)
	return out
}

func popIntPair(env *pumpkindb.Environment) (*big.Int, *big.Int, error) {
	bv, err := env.Stack.Pop()
	if err != nil {
		return nil, nil, err
	}
	av, err := env.Stack.Pop()
	if err != nil {
		return nil, nil, err
	}
	a, err := toInt(av)
	if err != nil {
		return nil, nil, err
	}
	b, err := toInt(bv)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func intAdd(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popIntPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(fromInt(new(big.Int).Add(a, b)))
	return nil
}

func intSub(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popIntPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(fromInt(new(big.Int).Sub(a, b)))
	return nil
}

func intEqual(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popIntPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(a.Cmp(b) == 0))
	return nil
}

func intLT(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popIntPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(a.Cmp(b) < 0))
	return nil
}

func intGT(_ context.Context, env *pumpkindb.Environment) error {
	a, b, err := popIntPair(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(a.Cmp(b) > 0))
	return nil
}

func intToString(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	n, err := toInt(v)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.Value(n.String()))
	return nil
}

func intToUint(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	n, err := toInt(v)
	if err != nil {
		return err
	}
	if n.Sign() < 0 {
		return pumpkindb.NewInvalidValue(v)
	}
	env.Stack.Push(fromUint(n))
	return nil
}

func uintToInt(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Stack.Push(fromInt(toUint(v)))
	return nil
}

func stringToInt(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	n, ok := new(big.Int).SetString(string(v), 10)
	if !ok {
		return pumpkindb.NewInvalidValue(v)
	}
	env.Stack.Push(fromInt(n))
	return nil
}
