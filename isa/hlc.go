package isa

import (
	"context"

	"github.com/pumpkindb/pumpkindb"
	"github.com/pumpkindb/pumpkindb/hlc"
)

func init() {
	reg("HLC", true, hlcNow)
	reg("HLC/TICK", true, hlcTick)
	reg("HLC/LC", true, hlcLC)
	reg("HLC/OBSERVE", true, hlcObserve)
	reg("HLC/LT?", true, hlcLT)
	reg("HLC/GT?", true, hlcGT)
}

func popTimestamp(env *pumpkindb.Environment) (hlc.Timestamp, error) {
	v, err := env.Stack.Pop()
	if err != nil {
		return hlc.Timestamp{}, err
	}
	ts, ok := hlc.Decode(v)
	if !ok {
		return hlc.Timestamp{}, pumpkindb.NewInvalidValue(v)
	}
	return ts, nil
}

func hlcNow(_ context.Context, env *pumpkindb.Environment) error {
	env.Stack.Push(pumpkindb.Value(hlc.Now().Encode()))
	return nil
}

func hlcTick(_ context.Context, env *pumpkindb.Environment) error {
	ts, err := popTimestamp(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.Value(ts.Tick().Encode()))
	return nil
}

func hlcLC(_ context.Context, env *pumpkindb.Environment) error {
	ts, err := popTimestamp(env)
	if err != nil {
		return err
	}
	out := make(pumpkindb.Value, 4)
	c := ts.Count
	for i := 3; i >= 0; i-- {
		out[i] = byte(c)
		c >>= 8
	}
	env.Stack.Push(out)
	return nil
}

func hlcObserve(_ context.Context, env *pumpkindb.Environment) error {
	ts, err := popTimestamp(env)
	if err != nil {
		return err
	}
	hlc.Observe(ts)
	return nil
}

func hlcLT(_ context.Context, env *pumpkindb.Environment) error {
	b, err := popTimestamp(env)
	if err != nil {
		return err
	}
	a, err := popTimestamp(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(a.Less(b)))
	return nil
}

func hlcGT(_ context.Context, env *pumpkindb.Environment) error {
	b, err := popTimestamp(env)
	if err != nil {
		return err
	}
	a, err := popTimestamp(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(b.Less(a)))
	return nil
}
