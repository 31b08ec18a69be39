package isa

import (
	"context"

	"github.com/pumpkindb/pumpkindb"
)

func init() {
	reg("SUBSCRIBE", true, subscribe)
	reg("UNSUBSCRIBE", true, unsubscribe)
	reg("PUBLISH", true, publish)
}

func subscribe(_ context.Context, env *pumpkindb.Environment) error {
	topic, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	id := env.Subscribe(topic)
	env.Stack.Push(pumpkindb.Value(id))
	return nil
}

func unsubscribe(_ context.Context, env *pumpkindb.Environment) error {
	id, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Unsubscribe(string(id))
	return nil
}

func publish(_ context.Context, env *pumpkindb.Environment) error {
	topic, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	value, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Publish(topic, value)
	return nil
}
